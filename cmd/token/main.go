// Command token mints an admin access token signed with JWT_SECRET, for
// calling the write endpoints from scripts.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sahilchouksey/institucion-api/config"
	"github.com/sahilchouksey/institucion-api/utils/auth"
)

func main() {
	subject := flag.String("sub", "admin", "token subject, recorded as the actor in the audit trail")
	role := flag.String("role", auth.RoleAdmin, "role claim")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := config.LoadENV(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to load .env:", err)
		os.Exit(1)
	}
	env, err := config.Get()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if env.JWT_SECRET == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}

	manager := auth.NewJWTManager(auth.JWTConfig{
		Secret: env.JWT_SECRET,
		Expiry: *expiry,
		Issuer: env.JWT_ISSUER,
	})

	token, _, err := manager.GenerateAccessToken(*subject, *role)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to sign token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
