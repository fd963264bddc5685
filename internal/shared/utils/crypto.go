package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Coût bcrypt aligné sur la plateforme historique
const bcryptCost = 10

// HashPassword hash un mot de passe avec bcrypt
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("mot de passe vide")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("impossible de hasher le mot de passe: %w", err)
	}

	return string(hashed), nil
}

// VerifyPassword vérifie un mot de passe contre son hash bcrypt
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
