package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"auction-engine/internal/auth"
	"auction-engine/utils"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	role := flag.String("role", string(auth.RoleAdmin), "token role: admin or team")
	user := flag.String("user", "operator", "user id carried in the token")
	team := flag.String("team", "", "team id, required for team tokens")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		utils.Fatal("JWT_SECRET is required", nil)
	}

	r := auth.Role(*role)
	if r != auth.RoleAdmin && r != auth.RoleTeam {
		utils.Fatal("unknown role", map[string]any{"role": *role})
	}

	token, err := auth.NewIssuer(secret, *ttl).GenerateToken(auth.Identity{UserID: *user, Role: r, TeamID: *team})
	if err != nil {
		utils.Fatal("failed to issue token", map[string]any{"error": err.Error()})
	}
	fmt.Println(token)
}
