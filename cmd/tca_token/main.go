// Command tca_token mints bearer tokens for the admin endpoints.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/SscSPs/tax_compare_app/internal/platform/config"
	"github.com/golang-jwt/jwt/v5"
)

func main() {
	subject := flag.String("subject", "", "user ID recorded as the author of schedule changes")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "-subject is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET must be set")
		os.Exit(1)
	}

	lifetime := cfg.JWTExpiryDuration
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := mintToken(cfg.JWTSecret, cfg.JWTIssuer, *subject, lifetime, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func mintToken(secret, issuer, subject string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
