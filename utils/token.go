package utils

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chat-service/config"
	"chat-service/messenger"
)

// Tokens struct to describe tokens object.
type Tokens struct {
	Access  string
	Refresh string
}

// TokenMetadata struct to describe metadata in JWT.
type TokenMetadata struct {
	Id  string
	Otp bool
	Exp int64
}

// GenerateTokens func for generate a new Access & Refresh tokens. Minting
// normally happens in the auth service; this mirrors its claims so local
// tooling and tests can produce valid credentials.
func GenerateTokens(id string, otp bool) (*Tokens, error) {
	accessToken, err := generateToken(
		id,
		otp,
		"JWT_ACCESS_EXPIRE",
		"JWT_ACCESS_KEY",
	)
	if err != nil {
		return nil, err
	}

	refreshToken, err := generateToken(
		id,
		otp,
		"JWT_REFRESH_EXPIRE",
		"JWT_REFRESH_KEY",
	)
	if err != nil {
		return nil, err
	}

	return &Tokens{
		Access:  accessToken,
		Refresh: refreshToken,
	}, nil
}

func generateToken(id string, otp bool, expire string, key string) (string, error) {
	minutesCount, _ := strconv.Atoi(config.Config(expire))

	claims := jwt.MapClaims{}

	claims["id"] = id
	claims["otp"] = otp
	claims["exp"] = time.Now().Add(time.Minute * time.Duration(minutesCount)).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	t, err := token.SignedString([]byte(config.Config(key)))
	if err != nil {
		return "", err
	}

	return t, nil
}

func CheckAndExtractTokenMetadata(token string, key string) (*TokenMetadata, error) {
	t, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Config(key)), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := t.Claims.(jwt.MapClaims); ok && t.Valid {
		id, idOk := claims["id"].(string)
		otp, otpOk := claims["otp"].(bool)
		exp, expOk := claims["exp"].(float64)
		if !idOk || !otpOk || !expOk {
			return nil, jwt.ErrTokenInvalidClaims
		}
		return &TokenMetadata{
			Id:  id,
			Otp: otp,
			Exp: int64(exp),
		}, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

// JWTAuthenticator validates realtime handshake credentials against the
// access key. Tokens still pending a 2FA validation carry otp=true and are
// refused: they must not open a messaging session.
type JWTAuthenticator struct {
	KeyEnv string
}

var _ messenger.Authenticator = (*JWTAuthenticator)(nil)

func (a *JWTAuthenticator) Authenticate(rawCredential string) (uint, error) {
	if rawCredential == "" {
		return 0, messenger.ErrAuthFailed
	}

	metadata, err := CheckAndExtractTokenMetadata(rawCredential, a.KeyEnv)
	if err != nil || metadata == nil || metadata.Otp {
		return 0, messenger.ErrAuthFailed
	}

	id, err := strconv.ParseUint(metadata.Id, 10, 64)
	if err != nil {
		return 0, messenger.ErrAuthFailed
	}
	return uint(id), nil
}
