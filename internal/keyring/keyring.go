// Package keyring keeps the PostgreSQL connection string out of flags and files.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/cloudcontrol/internal/constants"
)

var (
	ErrNotFound           = errors.New("no connection string stored in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source says where a connection string was found.
type Source string

const (
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

const probeUser = "availability-probe"

// translate maps go-keyring errors onto this package's sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gokeyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
}

func GetConnectionString() (string, error) {
	connStr, err := gokeyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		return "", translate(err)
	}
	return connStr, nil
}

// SetConnectionString stores connStr with surrounding whitespace removed.
func SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := gokeyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store connection string: %w", translate(err))
	}
	return nil
}

func DeleteConnectionString() error {
	err := translate(gokeyring.Delete(constants.AppName, constants.DefaultKeyringUser))
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("failed to delete connection string: %w", err)
}

// IsAvailable reports whether the OS keyring answers a read. An empty keyring counts.
func IsAvailable() bool {
	_, err := gokeyring.Get(constants.AppName, probeUser)
	return translate(err) == nil || errors.Is(translate(err), ErrNotFound)
}

// LookupConnection returns the connection string from CLOUDCONTROL_DB_CONNECTION, or
// from the keyring when the variable is unset. ErrNotFound means neither holds one.
func LookupConnection() (string, Source, error) {
	if conn := strings.TrimSpace(os.Getenv(constants.ConnectionEnvVar)); conn != "" {
		return conn, SourceEnv, nil
	}
	conn, err := GetConnectionString()
	if err != nil {
		return "", "", err
	}
	return conn, SourceKeyring, nil
}
