package jwt

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/browsekit/navigator/internal/api/routes"
)

type UserClaims struct {
	Name           string   `json:"name"`
	AllowedMethods []string `json:"allowed_methods"`
	AllowedRoutes  []string `json:"allowed_routes"`
	jwt.RegisteredClaims
}

type Role string

const (
	ADMIN Role = "ADMIN"
	RW    Role = "RW" // Read/Write
	RO    Role = "RO" // Read-Only
)

type ctxKey string

const (
	RequestMethodKey = ctxKey("request_method")
	RequestRouteKey  = ctxKey("request_route")
)

// claimsByName indexes the registered service identities; built once at
// package init so Validate never walks the role map per request.
var claimsByName = func() map[string]UserClaims {
	index := make(map[string]UserClaims)
	for _, claimsForRole := range endpointUserClaims {
		for _, userClaims := range claimsForRole {
			index[userClaims.Name] = userClaims
		}
	}
	return index
}()

var routePatterns = map[string]*regexp.Regexp{}

func init() {
	for _, userClaims := range claimsByName {
		for _, pattern := range userClaims.AllowedRoutes {
			routePatterns[pattern] = regexp.MustCompile(pattern)
		}
	}
}

func parseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(
		strings.TrimSpace(tokenString),
		&UserClaims{},
		func(t *jwt.Token) (any, error) {
			return GetInstance().issuer.secret, nil
		},
		jwt.WithJSONNumber(),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{
			GetInstance().GetSigningMethod().Alg(),
		}),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok {
		return nil, fmt.Errorf("token carries no user claims section")
	}
	return claims, nil
}

// Validate checks a bearer token against the registered service
// identities: the signature and expiry must hold, the method must be in
// the identity's allow list, and the route must match one of its
// patterns. Unknown routes are denied.
func Validate(ctx context.Context, tokenString string) (*JWTError, error) {
	requestClaims, err := parseToken(tokenString)
	if err != nil {
		return Errors[ErrUnAuthorized], fmt.Errorf("invalid token: %w", err)
	}

	userClaims, ok := claimsByName[requestClaims.Name]
	if !ok {
		return Errors[ErrForbidden], fmt.Errorf("invalid role: %s not registered as a service role", requestClaims.Name)
	}

	method, ok := ctx.Value(RequestMethodKey).(string)
	if !ok {
		return Errors[ErrForbidden], fmt.Errorf("could not parse request method")
	}
	if !slices.Contains(userClaims.AllowedMethods, method) {
		return Errors[ErrUnAuthorized], fmt.Errorf("not allowed to perform %s action", method)
	}

	route, ok := ctx.Value(RequestRouteKey).(string)
	if !ok {
		return Errors[ErrForbidden], fmt.Errorf("could not parse request route")
	}
	for _, allowedRoute := range userClaims.AllowedRoutes {
		if routePatterns[allowedRoute].MatchString(route) {
			return nil, nil
		}
	}

	return Errors[ErrForbidden], fmt.Errorf("no routes matched: default deny")
}

var roleMethod = map[Role][]string{
	RW: {
		http.MethodDelete,
		http.MethodGet,
		http.MethodPatch,
		http.MethodPost,
		http.MethodPut,
	},
	RO: {
		http.MethodGet,
	},
}

var endpointUserClaims = map[Role][]UserClaims{
	ADMIN: {
		{
			Name:           string(ADMIN),
			AllowedMethods: roleMethod[RW],
			AllowedRoutes: []string{
				".*",
			},
		},
	},
	RO: {
		{
			// status dashboards only read entries and the drift hash
			Name:           "STATUS-WORKER",
			AllowedMethods: roleMethod[RO],
			AllowedRoutes: []string{
				fmt.Sprintf("^%s$", routes.OVERRIDES),
				fmt.Sprintf("^%s$", routes.OVERRIDES_HASH),
				fmt.Sprintf("^%s$", routes.DRIFT),
				fmt.Sprintf("^%s/.*$", routes.RESOLVE),
			},
		},
	},
	RW: {
		{
			// the browser shell manages entries, bookmarks and navigation
			Name:           "SHELL-UI",
			AllowedMethods: roleMethod[RW],
			AllowedRoutes: []string{
				fmt.Sprintf("^%s$", routes.OVERRIDES),
				fmt.Sprintf("^%s/.*$", routes.OVERRIDES),
				fmt.Sprintf("^%s$", routes.BOOKMARKS),
				fmt.Sprintf("^%s/.*$", routes.BOOKMARKS),
				fmt.Sprintf("^%s$", routes.NAVIGATE),
				fmt.Sprintf("^%s/.*$", routes.RESOLVE),
			},
		},
	},
}
