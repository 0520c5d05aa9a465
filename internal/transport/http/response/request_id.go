package response

import (
	"net/http"

	ctxpkg "github.com/baechuer/identity-service/internal/pkg/context"
)

func RequestIDFromContext(r *http.Request) string {
	return ctxpkg.GetRequestID(r.Context())
}
