package middleware

import (
	"context"
	"net/http"
	"strings"

	"medfi-backend/pkg/response"
)

// WalletHeader carries the caller's wallet address. The connected
// wallet is the only identity doctors and patients have; there is no
// password or signature step, the address alone scopes every record.
const WalletHeader = "X-Wallet-Address"

const WalletAddressKey contextKey = "wallet_address"

type WalletMiddleware struct{}

func NewWalletMiddleware() *WalletMiddleware {
	return &WalletMiddleware{}
}

func (m *WalletMiddleware) RequireWallet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		address := strings.TrimSpace(r.Header.Get(WalletHeader))
		if address == "" {
			response.Unauthorized(w, "Wallet address header is required")
			return
		}

		ctx := context.WithValue(r.Context(), WalletAddressKey, address)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetWalletFromContext extracts the wallet address from context
func GetWalletFromContext(ctx context.Context) (string, bool) {
	address, ok := ctx.Value(WalletAddressKey).(string)
	return address, ok
}
