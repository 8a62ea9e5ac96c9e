package profile

// CredentialType identifies how a Wi-Fi network authenticates clients.
type CredentialType string

const (
	// CredentialOpen is an unsecured network carrying no passphrase.
	CredentialOpen CredentialType = "open"
	// CredentialWPA is WPA/WPA2 pre-shared-key authentication.
	CredentialWPA CredentialType = "wpa"
	// CredentialWEP is legacy WEP. It is recognized so it can be rejected
	// explicitly instead of being misread as an open network.
	CredentialWEP CredentialType = "wep"
)

// Record is a single saved Wi-Fi profile. Records are value objects:
// once constructed through New they are never mutated, and synchronization
// produces new slices rather than editing existing ones.
type Record struct {
	// Name is the display identifier (NetworkManager connection id).
	// Defaults to the SSID when not set.
	Name string
	// SSID is the network identifier and the key records are matched on.
	SSID string
	// Credential is the authentication scheme, open or wpa.
	Credential CredentialType
	// Passphrase is the WPA pre-shared key. Empty means unknown: the tool
	// may redact secrets it cannot read, and such records still sync with
	// the passphrase left for the user to supply.
	Passphrase string
	// Autoconnect mirrors NetworkManager's autoconnect flag. Defaults to true.
	Autoconnect bool
}

// New builds a validated Record. An empty name defaults to the SSID.
// It is pure: no I/O, no side effects, same inputs always produce the
// same result.
func New(name, ssid string, credential CredentialType, passphrase string, autoconnect bool) (Record, error) {
	record := Record{
		Name:        name,
		SSID:        ssid,
		Credential:  credential,
		Passphrase:  passphrase,
		Autoconnect: autoconnect,
	}
	if record.Name == "" {
		record.Name = ssid
	}
	if err := record.Validate(); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Validate checks the credential invariants. Records built through New
// always pass; Apply re-checks hand-assembled records before invoking
// nmcli.
func (r Record) Validate() error {
	if r.SSID == "" {
		return NewMissingFieldError(r.Name, "ssid")
	}
	switch r.Credential {
	case CredentialOpen:
		if r.Passphrase != "" {
			return NewInvalidCredentialError(r.Name, "open networks cannot carry a passphrase")
		}
	case CredentialWPA:
		// Passphrase may legitimately be absent: nmcli redacts secrets
		// it cannot read, and the record is still worth carrying.
	case CredentialWEP:
		return NewUnsupportedCredentialError(r.Name)
	default:
		return NewUnknownCredentialTypeError(r.Name, string(r.Credential))
	}
	return nil
}

// HasPassphrase reports whether the passphrase is known.
func (r Record) HasPassphrase() bool {
	return r.Passphrase != ""
}
