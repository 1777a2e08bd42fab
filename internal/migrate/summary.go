package migrate

import (
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
	"github/chapool/safe-migrate/internal/safe/tx"
)

const etherDecimals = 18

func renderSummary(w io.Writer, transaction *tx.Transaction, digest common.Hash) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"to", transaction.To.Hex()},
		{"value", transaction.Value.String()},
		{"data", hexutil.Encode(transaction.Data)},
		{"operation", transaction.Operation.String()},
		{"safe transaction gas", transaction.SafeTxGas.String()},
		{"base gas", transaction.BaseGas.String()},
		{"gas price", transaction.GasPrice.String()},
		{"gas token", displayAddress(transaction.GasToken)},
		{"refund receiver", displayAddress(transaction.RefundReceiver)},
		{"nonce", transaction.Nonce},
		{"max fee", MaxFee(transaction)},
	})
	t.AppendSeparator()
	t.AppendRow(table.Row{"hash", digest.Hex()})

	t.Render()
}

// MaxFee is the most the relay can refund itself for transaction:
// (safeTxGas + baseGas) * gasPrice. It is shown in ETH when gas is paid in
// ether and in token base units otherwise.
func MaxFee(transaction *tx.Transaction) string {
	gas := new(big.Int).Add(transaction.SafeTxGas.Int().ToBig(), transaction.BaseGas.Int().ToBig())
	fee := new(big.Int).Mul(gas, transaction.GasPrice.Int().ToBig())

	if transaction.GasToken == nil || *transaction.GasToken == (common.Address{}) {
		return decimal.NewFromBigInt(fee, -etherDecimals).String() + " ETH"
	}

	return decimal.NewFromBigInt(fee, 0).String() + " (token units)"
}

func displayAddress(addr *common.Address) string {
	if addr == nil {
		return "-"
	}
	return addr.Hex()
}
