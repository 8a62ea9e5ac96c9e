package nmcli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmww/wifi-sync/pkg/profile"
)

var (
	dataShowWPA, _      = os.ReadFile("testdata/show_wpa.txt")
	dataShowOpen, _     = os.ReadFile("testdata/show_open.txt")
	dataShowWEP, _      = os.ReadFile("testdata/show_wep.txt")
	dataShowEthernet, _ = os.ReadFile("testdata/show_ethernet.txt")
	dataShowBatch, _    = os.ReadFile("testdata/show_batch.txt")
	dataShowActive, _   = os.ReadFile("testdata/show_active.txt")
)

func Test_testDataIsValid(t *testing.T) {
	for name, data := range map[string][]byte{
		"dataShowWPA":      dataShowWPA,
		"dataShowOpen":     dataShowOpen,
		"dataShowWEP":      dataShowWEP,
		"dataShowEthernet": dataShowEthernet,
		"dataShowBatch":    dataShowBatch,
		"dataShowActive":   dataShowActive,
	} {
		require.NotEmpty(t, data, name)
	}
}

func TestExtractProfile_WPA(t *testing.T) {
	record, err := ExtractProfile("HomeWifi", string(dataShowWPA))
	require.NoError(t, err)

	assert.Equal(t, "HomeWifi", record.Name)
	assert.Equal(t, "HomeNet", record.SSID)
	assert.Equal(t, profile.CredentialWPA, record.Credential)
	assert.Equal(t, "hunter22!", record.Passphrase)
	assert.True(t, record.Autoconnect)
}

func TestExtractProfile_OpenWithAutoconnectOff(t *testing.T) {
	record, err := ExtractProfile("Airport Free WiFi", string(dataShowOpen))
	require.NoError(t, err)

	assert.Equal(t, "Airport Free WiFi", record.Name)
	assert.Equal(t, "SFO FREE WIFI", record.SSID)
	assert.Equal(t, profile.CredentialOpen, record.Credential)
	assert.False(t, record.HasPassphrase())
	assert.False(t, record.Autoconnect)
}

func TestExtractProfile_WEPRejected(t *testing.T) {
	_, err := ExtractProfile("OldRouter", string(dataShowWEP))
	require.Error(t, err)
	assert.True(t, profile.IsUnsupportedCredentialError(err), "unexpected error: %v", err)
	assert.Contains(t, err.Error(), "OldRouter")
}

func TestExtractProfile_NonWifiDump(t *testing.T) {
	// Wired connections have no 802-11-wireless section; the ssid scan
	// finding nothing is what keeps them out of syncs.
	_, err := ExtractProfile("Wired connection 1", string(dataShowEthernet))
	require.Error(t, err)
	assert.True(t, IsAmbiguousSSIDError(err), "unexpected error: %v", err)
	assert.Contains(t, err.Error(), "found 0")
}

func TestExtractProfile_FieldScans(t *testing.T) {
	tests := []struct {
		name  string
		dump  string
		check func(t *testing.T, record profile.Record, err error)
	}{
		{
			name: "minimal open profile",
			dump: "802-11-wireless.ssid:                   CafeNet\n",
			check: func(t *testing.T, record profile.Record, err error) {
				require.NoError(t, err)
				assert.Equal(t, profile.CredentialOpen, record.Credential)
				assert.True(t, record.Autoconnect)
			},
		},
		{
			name: "redacted passphrase keeps wpa",
			dump: "802-11-wireless.ssid:        OfficeNet\n" +
				"802-11-wireless-security.key-mgmt: wpa-psk\n" +
				"802-11-wireless-security.psk:      --\n",
			check: func(t *testing.T, record profile.Record, err error) {
				require.NoError(t, err)
				assert.Equal(t, profile.CredentialWPA, record.Credential)
				assert.False(t, record.HasPassphrase())
			},
		},
		{
			name: "passphrase with spaces survives",
			dump: "802-11-wireless.ssid:              LoftNet\n" +
				"802-11-wireless-security.key-mgmt: wpa-psk\n" +
				"802-11-wireless-security.psk:      correct horse battery staple\n",
			check: func(t *testing.T, record profile.Record, err error) {
				require.NoError(t, err)
				assert.Equal(t, "correct horse battery staple", record.Passphrase)
			},
		},
		{
			name: "two ssid fields",
			dump: "802-11-wireless.ssid: NetA\n802-11-wireless.ssid: NetB\n",
			check: func(t *testing.T, _ profile.Record, err error) {
				require.Error(t, err)
				assert.True(t, IsAmbiguousSSIDError(err))
				assert.Contains(t, err.Error(), "found 2")
			},
		},
		{
			name: "two passphrase fields",
			dump: "802-11-wireless.ssid: NetA\n" +
				"802-11-wireless-security.psk: one\n" +
				"802-11-wireless-security.psk: two\n",
			check: func(t *testing.T, _ profile.Record, err error) {
				require.Error(t, err)
				assert.True(t, IsAmbiguousPassphraseError(err))
			},
		},
		{
			name: "two key management fields",
			dump: "802-11-wireless.ssid: NetA\n" +
				"802-11-wireless-security.key-mgmt: wpa-psk\n" +
				"802-11-wireless-security.key-mgmt: wpa-psk\n",
			check: func(t *testing.T, _ profile.Record, err error) {
				require.Error(t, err)
				assert.True(t, IsAmbiguousKeyManagementError(err))
			},
		},
		{
			name: "unknown key management scheme",
			dump: "802-11-wireless.ssid: FutureNet\n" +
				"802-11-wireless-security.key-mgmt: sae\n",
			check: func(t *testing.T, _ profile.Record, err error) {
				require.Error(t, err)
				assert.True(t, IsUnknownKeyManagementError(err))
				assert.Contains(t, err.Error(), "sae")
			},
		},
		{
			name: "unset ssid placeholder",
			dump: "802-11-wireless.ssid:                   --\n",
			check: func(t *testing.T, _ profile.Record, err error) {
				require.Error(t, err)
				assert.True(t, profile.IsMissingFieldError(err))
			},
		},
		{
			name: "empty dump",
			dump: "",
			check: func(t *testing.T, _ profile.Record, err error) {
				require.Error(t, err)
				assert.True(t, IsAmbiguousSSIDError(err))
			},
		},
		{
			name: "autoconnect disabled marker",
			dump: "802-11-wireless.ssid: LabNet\n" +
				"wifi.autoconnect:     disabled\n",
			check: func(t *testing.T, record profile.Record, err error) {
				require.NoError(t, err)
				assert.False(t, record.Autoconnect)
			},
		},
		{
			name: "open network carrying a passphrase",
			dump: "802-11-wireless.ssid:         StrayNet\n" +
				"802-11-wireless-security.psk: leftover\n",
			check: func(t *testing.T, _ profile.Record, err error) {
				require.Error(t, err)
				assert.True(t, profile.IsInvalidCredentialError(err))
			},
		},
		{
			name: "similar keys never satisfy a scan",
			dump: "802-11-wireless.ssid:                  RealNet\n" +
				"802-11-wireless.seen-bssids:           AA:BB:CC:DD:EE:FF\n" +
				"802-11-wireless-security.psk-flags:    0 (none)\n" +
				"802-11-wireless-security.key-mgmt:     wpa-psk\n" +
				"connection.autoconnect-priority:       0\n",
			check: func(t *testing.T, record profile.Record, err error) {
				require.NoError(t, err)
				assert.Equal(t, "RealNet", record.SSID)
				assert.Equal(t, profile.CredentialWPA, record.Credential)
				assert.False(t, record.HasPassphrase())
				assert.True(t, record.Autoconnect)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := ExtractProfile("test-profile", tt.dump)
			tt.check(t, record, err)
		})
	}
}

func TestExtractProfile_NameFallsBackToSSID(t *testing.T) {
	record, err := ExtractProfile("", "802-11-wireless.ssid: BareNet\n")
	require.NoError(t, err)
	assert.Equal(t, "BareNet", record.Name)
}
