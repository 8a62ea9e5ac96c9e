package nmcli

import (
	"regexp"

	"github.com/wmww/wifi-sync/pkg/profile"
)

// Field patterns for nmcli's "key: value" dump format. Values may contain
// spaces, so everything after the key up to trailing whitespace is the
// value. Keys are anchored in full: settings like seen-bssids or
// ipv4.addresses must never satisfy a scan.
var (
	ssidPattern       = regexp.MustCompile(`(?m)^802-11-wireless\.ssid:\s*(.*?)\s*$`)
	passphrasePattern = regexp.MustCompile(`(?m)^802-11-wireless-security\.psk:\s*(.*?)\s*$`)
	keyMgmtPattern    = regexp.MustCompile(`(?m)^802-11-wireless-security\.key-mgmt:\s*(.*?)\s*$`)
	// The autoconnect flag is matched in any setting namespace because it
	// has moved between groups across NetworkManager releases.
	autoconnectOffPattern = regexp.MustCompile(`(?m)^[0-9A-Za-z-]+\.autoconnect:\s*(?:no|disabled)\s*$`)
)

// absentValue is nmcli's placeholder for a property that has no value.
const absentValue = "--"

// NetworkManager key management schemes this tool understands.
const (
	keyMgmtWEP = "none"    // static WEP, recognized so it can be rejected
	keyMgmtWPA = "wpa-psk" // WPA/WPA2 pre-shared key
)

// ExtractProfile pulls one profile's fields out of a raw
// `nmcli --show-secrets connection show` dump. Each field is scanned for
// independently; the dump is never parsed as a whole, so unrelated
// settings and future nmcli additions cannot break the scans.
//
// A dump without exactly one ssid field fails with ambiguous_ssid. This
// doubles as the Wi-Fi filter for bulk fetches: wired and loopback
// connections carry no 802-11-wireless section at all.
func ExtractProfile(name, dump string) (profile.Record, error) {
	ssidMatches := ssidPattern.FindAllStringSubmatch(dump, -1)
	if len(ssidMatches) != 1 {
		return profile.Record{}, NewAmbiguousSSIDError(name, len(ssidMatches))
	}
	ssid := ssidMatches[0][1]
	if ssid == absentValue {
		ssid = ""
	}

	passphrase := ""
	passphraseMatches := passphrasePattern.FindAllStringSubmatch(dump, -1)
	if len(passphraseMatches) > 1 {
		return profile.Record{}, NewAmbiguousPassphraseError(name, len(passphraseMatches))
	}
	if len(passphraseMatches) == 1 && passphraseMatches[0][1] != absentValue {
		passphrase = passphraseMatches[0][1]
	}

	credential := profile.CredentialOpen
	keyMgmtMatches := keyMgmtPattern.FindAllStringSubmatch(dump, -1)
	if len(keyMgmtMatches) > 1 {
		return profile.Record{}, NewAmbiguousKeyManagementError(name, len(keyMgmtMatches))
	}
	if len(keyMgmtMatches) == 1 {
		switch keyMgmtMatches[0][1] {
		case keyMgmtWEP:
			credential = profile.CredentialWEP
		case keyMgmtWPA:
			credential = profile.CredentialWPA
		default:
			return profile.Record{}, NewUnknownKeyManagementError(name, keyMgmtMatches[0][1])
		}
	}

	autoconnect := len(autoconnectOffPattern.FindAllString(dump, -1)) == 0

	// Record validation applies transitively: a WEP key management scheme
	// fails here with unsupported_credential.
	return profile.New(name, ssid, credential, passphrase, autoconnect)
}
