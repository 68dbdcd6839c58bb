package bench

import (
	"context"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dando385/electrum-bench/internal/electrum"
)

const validTxid = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

type fakeServer struct {
	scriptHashes []string
	txids        []string
	utxos        []electrum.UTXO
	err          error
}

func (f *fakeServer) ListUnspent(_ context.Context, scriptHash string) ([]electrum.UTXO, error) {
	f.scriptHashes = append(f.scriptHashes, scriptHash)
	return f.utxos, f.err
}

func (f *fakeServer) GetTransaction(_ context.Context, txid string) (string, error) {
	f.txids = append(f.txids, txid)
	if f.err != nil {
		return "", f.err
	}
	return "01000000", nil
}

func TestAddressLookupEmptyScriptMode(t *testing.T) {
	srv := &fakeServer{utxos: []electrum.UTXO{{TxHash: "aa", TxPos: 1, Value: 10}}}
	op := AddressLookup(srv, electrum.NewScriptResolver(electrum.ScriptModeEmpty, &chaincfg.MainNetParams))

	for _, addr := range []string{"1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", "not-an-address"} {
		out := op(context.Background(), addr)
		assert.True(t, out.OK())
	}

	assert.Len(t, srv.scriptHashes, 2)
}

func TestAddressLookupAddressMode(t *testing.T) {
	srv := &fakeServer{}
	op := AddressLookup(srv, electrum.NewScriptResolver(electrum.ScriptModeAddress, &chaincfg.MainNetParams))

	out := op(context.Background(), "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa")
	require.True(t, out.OK())
	assert.Equal(t, "0 UTXOs", out.Detail)

	out = op(context.Background(), "no_address_found")
	assert.Equal(t, FailureInvalidInput, out.Kind)
	assert.ErrorIs(t, out.Err, electrum.ErrInvalidAddress)

	assert.Len(t, srv.scriptHashes, 1, "invalid addresses must not reach the server")
}

func TestAddressLookupRemoteFailure(t *testing.T) {
	srv := &fakeServer{err: errors.New("connection reset")}
	op := AddressLookup(srv, electrum.NewScriptResolver(electrum.ScriptModeEmpty, &chaincfg.MainNetParams))

	out := op(context.Background(), "anything")
	assert.Equal(t, FailureRemote, out.Kind)
	assert.Len(t, srv.scriptHashes, 1)
}

func TestTransactionFetch(t *testing.T) {
	srv := &fakeServer{}
	op := TransactionFetch(srv)

	out := op(context.Background(), validTxid)
	require.True(t, out.OK(), out.Err)
	assert.Equal(t, []string{validTxid}, srv.txids)

	out = op(context.Background(), "no_txid_found")
	assert.Equal(t, FailureInvalidInput, out.Kind)
	assert.ErrorIs(t, out.Err, electrum.ErrInvalidTxid)
	assert.Len(t, srv.txids, 1, "invalid txids must not reach the server")
}

func TestTransactionFetchRemoteFailure(t *testing.T) {
	srv := &fakeServer{err: &electrum.RPCError{Message: "missing transaction"}}
	op := TransactionFetch(srv)

	out := op(context.Background(), validTxid)
	assert.Equal(t, FailureRemote, out.Kind)

	var rpcErr *electrum.RPCError
	assert.True(t, errors.As(out.Err, &rpcErr))
}

func TestTransactionPassThroughSampler(t *testing.T) {
	s, _ := newTestSampler()
	srv := &fakeServer{}

	run := s.Run(context.Background(), TransactionPass(
		[]string{validTxid, "bogus", validTxid},
		100,
		TransactionFetch(srv),
	))

	assert.Equal(t, TransactionPassName, run.Name)
	assert.Equal(t, "transactions", run.Unit)
	assert.Equal(t, 3, run.SampleSize)
	assert.Equal(t, 2, run.Successes)
	assert.Equal(t, 1, run.Failures)
	assert.Equal(t, 1, run.InvalidInputs)
	assert.Len(t, srv.txids, 2)
}
