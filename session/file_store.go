package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	apperrors "peoplectl/internal/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore persists the session token as JSON in a single file, surviving
// restarts. The file is created with 0600 since it holds a live credential.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Token() (oauth2.Token, bool) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return oauth2.Token{}, false
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		// A corrupt token file is indistinguishable from no session.
		return oauth2.Token{}, false
	}
	if token.AccessToken == "" {
		return oauth2.Token{}, false
	}
	return token, true
}

func (fs *FileStore) SetToken(token oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return apperrors.Wrapf(err, "[FileStore SetToken] creating token directory")
	}

	data, err := json.Marshal(token)
	if err != nil {
		return apperrors.Wrapf(err, "[FileStore SetToken] marshalling token")
	}

	if err := os.WriteFile(fs.path, data, 0o600); err != nil {
		return apperrors.Wrapf(err, "[FileStore SetToken] writing token file")
	}
	return nil
}

func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return apperrors.Wrapf(err, "[FileStore Clear] removing token file")
	}
	return nil
}
