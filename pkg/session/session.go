// Package session tracks which Azure subscription is active for one
// interactive user: the login context, a cached subscription listing,
// and the name index that guided selection validates against.
package session

import (
	"context"
	"fmt"

	"github.com/Azure/subscription-copilot/pkg/azure"
)

// Authenticator establishes and rescopes the Azure login.
type Authenticator interface {
	Login(ctx context.Context, cred *azure.Credential, subscription string) (*azure.LoginContext, error)
	Switch(ctx context.Context, name string) (*azure.LoginContext, error)
}

// SubscriptionLister fetches the subscriptions visible to the
// signed-in principal.
type SubscriptionLister interface {
	List(ctx context.Context) ([]azure.SubscriptionInfo, error)
}

// PromptInstaller pushes a derived prompt string to the hosting
// shell. Installation is cosmetic; errors are ignored by Session.
type PromptInstaller interface {
	Install(prompt string) error
}

// Session is the per-process subscription session. It is owned by the
// command layer and driven by a single sequential caller; it does no
// locking of its own.
type Session struct {
	auth      Authenticator
	lister    SubscriptionLister
	installer PromptInstaller

	connected bool
	login     *azure.LoginContext
	subs      []azure.SubscriptionInfo
	names     []string
	nameSet   map[string]struct{}
	active    string
}

// New returns a disconnected session. installer may be nil.
func New(auth Authenticator, lister SubscriptionLister, installer PromptInstaller) *Session {
	return &Session{auth: auth, lister: lister, installer: installer}
}

// Establish logs in, caches the subscription listing and marks the
// session connected. When either the login or the initial listing
// fails, no session state changes and the error is returned, so a
// failed login can never be mistaken for success. Prompt installation
// happens last and is best-effort.
func (s *Session) Establish(ctx context.Context, cred *azure.Credential, subscription string) error {
	login, err := s.auth.Login(ctx, cred, subscription)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	subs, err := s.lister.List(ctx)
	if err != nil {
		return fmt.Errorf("fetching subscription list: %w", err)
	}

	s.login = login
	s.subs = subs
	s.rebuildNames()
	s.connected = true
	s.active = login.SubscriptionName
	s.InstallPrompt()
	return nil
}

// Connected reports whether Establish has succeeded.
func (s *Session) Connected() bool {
	return s.connected
}

// Active returns the login context of the current subscription, or
// ErrNotConnected before the first successful Establish.
func (s *Session) Active() (*azure.LoginContext, error) {
	if !s.connected {
		return nil, ErrNotConnected
	}
	return s.login, nil
}

// ActiveName is the display name of the active subscription, empty
// before connect.
func (s *Session) ActiveName() string {
	return s.active
}

// Available returns the cached subscription listing. With refresh it
// re-fetches first; if the fetch fails the previous cache is returned
// unchanged together with a RefreshError, which callers treat as a
// warning. Without refresh the cache is returned as-is, even when
// empty.
func (s *Session) Available(ctx context.Context, refresh bool) ([]azure.SubscriptionInfo, error) {
	if !refresh {
		return s.subs, nil
	}
	subs, err := s.lister.List(ctx)
	if err != nil {
		return s.subs, &RefreshError{Err: err}
	}
	s.subs = subs
	s.rebuildNames()
	return s.subs, nil
}

// Select makes name the active subscription. The name must be in the
// cached name index; the session must be connected. On any failure
// the active subscription and login context are left as they were.
func (s *Session) Select(ctx context.Context, name string) error {
	if !s.connected {
		return ErrNotConnected
	}
	if _, ok := s.nameSet[name]; !ok {
		return &InvalidSelectionError{Name: name}
	}
	login, err := s.auth.Switch(ctx, name)
	if err != nil {
		return fmt.Errorf("switching to subscription %q: %w", name, err)
	}
	s.login = login
	s.active = login.SubscriptionName
	s.InstallPrompt()
	return nil
}

// Names is a snapshot of the cached subscription names, in listing
// order. It feeds shell completion and the interactive picker, so it
// always reflects the latest cache.
func (s *Session) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// rebuildNames reprojects the name index from the cached listing.
// The index is derived state and is only ever written here.
func (s *Session) rebuildNames() {
	names := make([]string, 0, len(s.subs))
	set := make(map[string]struct{}, len(s.subs))
	for _, sub := range s.subs {
		names = append(names, sub.Name)
		set[sub.Name] = struct{}{}
	}
	s.names = names
	s.nameSet = set
}
