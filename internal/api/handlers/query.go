package handlers

import (
	"errors"
	"net/url"
	"time"

	"github.com/m04kA/SMC-AutoservisBooking/internal/domain"
	"github.com/m04kA/SMC-AutoservisBooking/internal/service/bookings/models"
)

// ErrInvalidQuery некорректный параметр в строке запроса
var ErrInvalidQuery = errors.New("invalid query parameter")

// ParseListQuery читает startDate, endDate и customerPhone
// Даты интерпретируются в зоне loc
func ParseListQuery(query url.Values, loc *time.Location) (*models.ListRequest, error) {
	req := &models.ListRequest{}

	if s := query.Get("startDate"); s != "" {
		t, err := time.ParseInLocation(domain.DateFormat, s, loc)
		if err != nil {
			return nil, ErrInvalidQuery
		}
		req.StartDate = &t
	}
	if s := query.Get("endDate"); s != "" {
		t, err := time.ParseInLocation(domain.DateFormat, s, loc)
		if err != nil {
			return nil, ErrInvalidQuery
		}
		req.EndDate = &t
	}
	if s := query.Get("customerPhone"); s != "" {
		req.CustomerPhone = &s
	}

	return req, nil
}
