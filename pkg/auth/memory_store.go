package auth

import "sync"

// MemoryStore is an in-process CredentialStore for tests and ephemeral
// sessions.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]*Account)}
}

func (m *MemoryStore) Store(account *Account) error {
	if account == nil || account.Username == "" {
		return ErrInvalidCredentials
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *account
	m.accounts[account.Username] = &copied
	return nil
}

func (m *MemoryStore) Retrieve(username string) (*Account, error) {
	if username == "" {
		return nil, ErrInvalidCredentials
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[username]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	copied := *account
	return &copied, nil
}

func (m *MemoryStore) List() ([]*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Account
	for _, account := range m.accounts {
		copied := *account
		result = append(result, &copied)
	}
	return result, nil
}

func (m *MemoryStore) Delete(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[username]; !ok {
		return ErrCredentialsNotFound
	}
	delete(m.accounts, username)
	return nil
}

func (m *MemoryStore) Exists(username string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.accounts[username]
	return ok
}
