package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const idLength = 21

// GenerateID gera os identificadores das linhas sincronizadas dos provedores
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, idLength)
}

// MustGenerateID é usado onde a falha do gerador aleatório não tem tratamento possível
func MustGenerateID() string {
	id, err := GenerateID()
	if err != nil {
		panic(err)
	}
	return id
}
