package electrum

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genesisPubKey = "04678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5f"

func TestScriptHashOfEmptyScript(t *testing.T) {
	assert.Equal(t, "55b852781b9995a44c939b64e441ae2724b96f99c8f4fb9a141cfc9842c4b0e3", ScriptHash(nil))
	assert.Equal(t, ScriptHash(nil), ScriptHash([]byte{}))
}

func TestAddressScript(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		params  *chaincfg.Params
		want    string
		wantErr bool
	}{
		{
			name:   "p2pkh",
			addr:   "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
			params: &chaincfg.MainNetParams,
			want:   "76a91462e907b15cbf27d5425399ebf6f0fb50ebb88f1888ac",
		},
		{
			name:   "p2wpkh",
			addr:   "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
			params: &chaincfg.MainNetParams,
			want:   "0014751e76e8199196d454941c45d1b3a323f1433bd6",
		},
		{
			name:   "p2pk",
			addr:   "PUBKEY:" + genesisPubKey,
			params: &chaincfg.MainNetParams,
			want:   "41" + genesisPubKey + "ac",
		},
		{
			name:    "testnet address on mainnet",
			addr:    "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx",
			params:  &chaincfg.MainNetParams,
			wantErr: true,
		},
		{
			name:    "placeholder",
			addr:    "no_address_found",
			params:  &chaincfg.MainNetParams,
			wantErr: true,
		},
		{
			name:    "bad pubkey",
			addr:    "PUBKEY:zz",
			params:  &chaincfg.MainNetParams,
			wantErr: true,
		},
		{
			name:    "empty",
			addr:    "",
			params:  &chaincfg.MainNetParams,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := AddressScript(tt.addr, tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(script))
		})
	}
}

func TestScriptResolver(t *testing.T) {
	t.Run("address mode derives per address", func(t *testing.T) {
		r := NewScriptResolver(ScriptModeAddress, &chaincfg.MainNetParams)

		a, err := r.Resolve("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa")
		require.NoError(t, err)
		b, err := r.Resolve("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4")
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
		assert.Len(t, a, 64)

		_, err = r.Resolve("garbage")
		assert.ErrorIs(t, err, ErrInvalidAddress)
	})

	t.Run("empty mode ignores the address", func(t *testing.T) {
		r := NewScriptResolver(ScriptModeEmpty, &chaincfg.MainNetParams)
		assert.Equal(t, ScriptModeEmpty, r.Mode())

		for _, addr := range []string{"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", "garbage", ""} {
			got, err := r.Resolve(addr)
			require.NoError(t, err)
			assert.Equal(t, ScriptHash(nil), got)
		}
	})
}

func TestParseScriptMode(t *testing.T) {
	m, err := ParseScriptMode("EMPTY")
	require.NoError(t, err)
	assert.Equal(t, ScriptModeEmpty, m)

	_, err = ParseScriptMode("p2sh")
	assert.Error(t, err)
}

func TestNetworkParams(t *testing.T) {
	for name, want := range map[string]*chaincfg.Params{
		"mainnet": &chaincfg.MainNetParams,
		"testnet": &chaincfg.TestNet3Params,
		"signet":  &chaincfg.SigNetParams,
		"regtest": &chaincfg.RegressionNetParams,
	} {
		got, err := NetworkParams(name)
		require.NoError(t, err, name)
		assert.Same(t, want, got, name)
	}

	_, err := NetworkParams("litecoin")
	assert.Error(t, err)
}
