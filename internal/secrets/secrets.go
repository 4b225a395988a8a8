package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	//KeyringService groups this app's secrets in the OS keychain.
	KeyringService = "jobfinder"

	telegramAccount = "telegram-bot-token"
)

//GetTelegramToken reads the bot token from the OS keychain.
func GetTelegramToken() (string, error) {
	token, err := keyring.Get(KeyringService, telegramAccount)
	if err != nil || strings.TrimSpace(token) == "" {
		return "", errors.New("telegram token not found in keychain")
	}
	return token, nil
}

//SetTelegramToken stores the bot token in the OS keychain.
func SetTelegramToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, telegramAccount, token)
}

//DeleteTelegramToken removes the bot token from the OS keychain.
func DeleteTelegramToken() error {
	return keyring.Delete(KeyringService, telegramAccount)
}
