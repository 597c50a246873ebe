package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Davincible/rscodec/pkg/secure"
	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize   = 32
	NonceSize  = 12
	KeySize    = 32
	Iterations = 100000
)

var (
	ErrNoSession          = errors.New("storage: no session saved")
	ErrPassphraseRequired = errors.New("storage: session is encrypted, passphrase required")
)

// Session is the last successfully encoded codeword.
type Session struct {
	Codeword  []byte    `json:"codeword"`
	Nsym      int       `json:"nsym"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageLength returns the number of message bytes in the codeword.
func (s *Session) MessageLength() int {
	return len(s.Codeword) - s.Nsym
}

type envelope struct {
	Encrypted  bool     `json:"encrypted"`
	Salt       []byte   `json:"salt,omitempty"`
	Nonce      []byte   `json:"nonce,omitempty"`
	Ciphertext []byte   `json:"ciphertext,omitempty"`
	Session    *Session `json:"session,omitempty"`
}

type SessionStore struct {
	filepath string
}

func NewSessionStore(filepath string) *SessionStore {
	return &SessionStore{
		filepath: filepath,
	}
}

func (s *SessionStore) Path() string {
	return s.filepath
}

// Save replaces the stored session. An empty passphrase stores it in the
// clear; otherwise it is sealed with AES-GCM under a PBKDF2 key.
func (s *SessionStore) Save(session *Session, passphrase []byte) error {
	if session == nil || len(session.Codeword) == 0 {
		return fmt.Errorf("session codeword cannot be empty")
	}

	env := envelope{}
	if len(passphrase) == 0 {
		env.Session = session
	} else {
		plaintext, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		defer secure.Zero(plaintext)

		if err := seal(&env, plaintext, passphrase); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session file: %w", err)
	}

	dir := filepath.Dir(s.filepath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(s.filepath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func (s *SessionStore) Load(passphrase []byte) (*Session, error) {
	data, err := os.ReadFile(s.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session file: %w", err)
	}

	if !env.Encrypted {
		if env.Session == nil {
			return nil, ErrNoSession
		}
		return env.Session, nil
	}

	if len(passphrase) == 0 {
		return nil, ErrPassphraseRequired
	}

	plaintext, err := open(&env, passphrase)
	if err != nil {
		return nil, err
	}
	defer secure.Zero(plaintext)

	var session Session
	if err := json.Unmarshal(plaintext, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Encrypted reports whether the stored session needs a passphrase.
func (s *SessionStore) Encrypted() (bool, error) {
	data, err := os.ReadFile(s.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, ErrNoSession
		}
		return false, err
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false, fmt.Errorf("failed to unmarshal session file: %w", err)
	}
	return env.Encrypted, nil
}

func (s *SessionStore) Exists() bool {
	_, err := os.Stat(s.filepath)
	return err == nil
}

func (s *SessionStore) Delete() error {
	if !s.Exists() {
		return nil
	}
	return os.Remove(s.filepath)
}

func newGCM(passphrase, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(passphrase, salt, Iterations, KeySize, sha256.New)
	defer secure.Zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

func seal(env *envelope, plaintext, passphrase []byte) error {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return err
	}

	env.Encrypted = true
	env.Salt = salt
	env.Nonce = nonce
	env.Ciphertext = gcm.Seal(nil, nonce, plaintext, nil)
	return nil
}

func open(env *envelope, passphrase []byte) ([]byte, error) {
	gcm, err := newGCM(passphrase, env.Salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}
