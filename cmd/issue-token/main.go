// Command issue-token signs a development bearer token for a user so the API
// can be exercised locally without the hosted identity provider.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"verdic-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	userID := flag.String("user", "", "user ID (UUID); a random one is generated if omitted")
	role := flag.String("role", string(models.RoleLawyer), "role claim: admin, judge, lawyer, or public_user")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables: %v", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not configured")
	}

	if !models.AppRole(*role).Valid() {
		log.Fatalf("Unknown role %q", *role)
	}

	id := *userID
	if id == "" {
		id = uuid.New().String()
	} else if _, err := uuid.Parse(id); err != nil {
		log.Fatalf("Invalid user ID: %v", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id,
		"role": *role,
		"iat":  now.Unix(),
		"exp":  now.Add(*ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Printf("User:  %s\n", id)
	fmt.Printf("Role:  %s\n", *role)
	fmt.Printf("Token: %s\n", signed)
}
