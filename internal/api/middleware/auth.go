// Package middleware HTTP-middleware сервиса: аутентификация по
// заголовкам, request-id и метрики запросов.
//
// Аутентификация доверяет заголовкам X-Tenant-ID / X-Partner-ID,
// которые проставляет API-шлюз после проверки токена.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

type contextKey string

const (
	tenantIDKey  contextKey = "tenantID"
	partnerIDKey contextKey = "partnerID"

	headerTenantID  = "X-Tenant-ID"
	headerPartnerID = "X-Partner-ID"
)

type authError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AuthTenant требует заголовок X-Tenant-ID и кладет ID арендатора в контекст
func AuthTenant(next http.Handler) http.Handler {
	return requireIDHeader(next, headerTenantID, tenantIDKey)
}

// AuthPartner требует заголовок X-Partner-ID и кладет ID партнера в контекст
func AuthPartner(next http.Handler) http.Handler {
	return requireIDHeader(next, headerPartnerID, partnerIDKey)
}

// AuthAny требует хотя бы один из заголовков X-Tenant-ID / X-Partner-ID.
// Используется на маршрутах, доступных обеим сторонам бронирования.
func AuthAny(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		found := false

		if value := r.Header.Get(headerTenantID); value != "" {
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil || id <= 0 {
				respondUnauthorized(w, "некорректный заголовок "+headerTenantID)
				return
			}
			ctx = context.WithValue(ctx, tenantIDKey, id)
			found = true
		}

		if value := r.Header.Get(headerPartnerID); value != "" {
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil || id <= 0 {
				respondUnauthorized(w, "некорректный заголовок "+headerPartnerID)
				return
			}
			ctx = context.WithValue(ctx, partnerIDKey, id)
			found = true
		}

		if !found {
			respondUnauthorized(w, "требуется заголовок "+headerTenantID+" или "+headerPartnerID)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireIDHeader(next http.Handler, header string, key contextKey) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		value := r.Header.Get(header)
		if value == "" {
			respondUnauthorized(w, "отсутствует заголовок "+header)
			return
		}

		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil || id <= 0 {
			respondUnauthorized(w, "некорректный заголовок "+header)
			return
		}

		ctx := context.WithValue(r.Context(), key, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID извлекает ID арендатора из контекста
func GetTenantID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(tenantIDKey).(int64)
	return id, ok
}

// GetPartnerID извлекает ID партнера из контекста
func GetPartnerID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(partnerIDKey).(int64)
	return id, ok
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(authError{Code: "access_denied", Message: message})
}
