package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-AutoservisBooking/internal/api/handlers"
)

const msgTooManyRequests = "Príliš veľa požiadaviek, skúste to prosím o chvíľu"

// Лимитеры, к которым не обращались дольше idleTTL, удаляются
// Обход карты выполняется не чаще раза в sweepInterval
const (
	idleTTL       = 10 * time.Minute
	sweepInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP
type RateLimiter struct {
	mu         sync.Mutex
	visitors   map[string]*visitor
	lastSweep  time.Time
	limit      rate.Limit
	burst      int
	trustProxy bool
	log        Logger
	now        func() time.Time
}

// NewRateLimiter rps запросов в секунду с запасом burst на каждый IP
// trustProxy включает разбор X-Forwarded-For, только если сервис стоит за своим прокси
func NewRateLimiter(rps float64, burst int, trustProxy bool, log Logger) *RateLimiter {
	return &RateLimiter{
		visitors:   make(map[string]*visitor),
		limit:      rate.Limit(rps),
		burst:      burst,
		trustProxy: trustProxy,
		log:        log,
		now:        time.Now,
	}
}

func (l *RateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	v, exists := l.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweep(now)
	}

	return v.limiter
}

// sweep удаляет простаивающие лимитеры, вызывается под l.mu
func (l *RateLimiter) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > idleTTL {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// Middleware отвечает 429, если IP превысил лимит
func (l *RateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, l.trustProxy)
			if !l.getLimiter(ip).Allow() {
				l.log.Warn("%s %s - Rate limit exceeded: ip=%s", r.Method, r.URL.Path, ip)
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP адрес клиента
// За доверенным прокси это последний адрес X-Forwarded-For (его дописал прокси),
// иначе заголовок игнорируется и берется RemoteAddr
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			parts := strings.Split(forwarded, ",")
			if ip := strings.TrimSpace(parts[len(parts)-1]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
