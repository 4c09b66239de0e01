package jwt

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// service tokens live long, the manager rotates them well before expiry
const (
	serviceTokenValidity = time.Hour * 24 * 30
	renewalBuffer        = time.Minute * 5
)

var mgrInstance *ServiceTokenManager

// ServiceTokenManager holds the process identity: it signs and caches the
// token this service presents to peers, rotating it near expiry.
type ServiceTokenManager struct {
	issuer     *TokenIssuer
	userClaims UserClaims
	expiresAt  time.Time
	current    string
	mu         sync.RWMutex
}

func InitServiceTokenManager(secret []byte, userClaimsName string, opts ...tokenIssuerOption) error {
	if mgrInstance != nil {
		return nil
	}

	claims, ok := claimsByName[userClaimsName]
	if !ok {
		return fmt.Errorf("userclaims not registered for: %s", userClaimsName)
	}

	mgrInstance = &ServiceTokenManager{
		issuer:     NewTokenIssuer(secret, opts...),
		userClaims: claims,
	}
	return mgrInstance.refreshToken()
}

func GetInstance() *ServiceTokenManager {
	return mgrInstance
}

// IssueFor signs a fresh token carrying the claims registered under name.
// Used by the login endpoint to hand tokens to authenticated clients.
func IssueFor(name string, validity time.Duration) (string, error) {
	if mgrInstance == nil {
		return "", jwt.ErrInvalidKey
	}

	claims, ok := claimsByName[name]
	if !ok {
		return "", fmt.Errorf("userclaims not registered for: %s", name)
	}

	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(validity))
	claims.Issuer = mgrInstance.userClaims.Name

	return mgrInstance.issuer.New(claims)
}

func (tm *ServiceTokenManager) GetServiceToken() (string, error) {
	if mgrInstance == nil {
		return "", jwt.ErrInvalidKey
	}

	tm.mu.RLock()
	needsRefresh := time.Now().Add(renewalBuffer).After(tm.expiresAt)
	tm.mu.RUnlock()

	if needsRefresh {
		if err := tm.refreshToken(); err != nil {
			return "", fmt.Errorf("failed to refresh token: %w", err)
		}
	}

	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return "Bearer " + tm.current, nil
}

func (tm *ServiceTokenManager) GetSigningMethod() jwt.SigningMethod {
	return tm.issuer.signingMethod
}

func (tm *ServiceTokenManager) refreshToken() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	now := time.Now()
	tm.expiresAt = now.Add(serviceTokenValidity)
	tm.userClaims.IssuedAt = jwt.NewNumericDate(now)
	tm.userClaims.ExpiresAt = jwt.NewNumericDate(tm.expiresAt)
	tm.userClaims.Issuer = tm.userClaims.Name

	token, err := tm.issuer.New(tm.userClaims)
	if err != nil {
		return fmt.Errorf("could not generate token: %w", err)
	}
	tm.current = token

	return nil
}
