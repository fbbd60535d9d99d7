package auth

import "os"

const (
	envUsername = "INSTAGRAM_USERNAME"
	envPassword = "INSTAGRAM_PASSWORD"
)

// EnvironmentStore reads credentials from the process environment. It is
// read-only: Store and Delete always fail so the manager falls through to
// a persistent store.
type EnvironmentStore struct{}

func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

func (e *EnvironmentStore) Store(account *Account) error {
	return ErrInvalidCredentials
}

// Retrieve returns the environment credentials. An empty username matches
// whatever the environment holds; a non-empty one must match it.
func (e *EnvironmentStore) Retrieve(username string) (*Account, error) {
	envUser := os.Getenv(envUsername)
	envPass := os.Getenv(envPassword)
	if envUser == "" || envPass == "" {
		return nil, ErrCredentialsNotFound
	}
	if username != "" && username != envUser {
		return nil, ErrCredentialsNotFound
	}
	return &Account{Username: envUser, Password: envPass}, nil
}

func (e *EnvironmentStore) List() ([]*Account, error) {
	account, err := e.Retrieve("")
	if err != nil {
		return []*Account{}, nil
	}
	return []*Account{account}, nil
}

func (e *EnvironmentStore) Delete(username string) error {
	return ErrCredentialsNotFound
}

func (e *EnvironmentStore) Exists(username string) bool {
	_, err := e.Retrieve(username)
	return err == nil
}
