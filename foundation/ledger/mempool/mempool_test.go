package mempool_test

import (
	"testing"

	"github.com/forgecoin/forgecoin/foundation/ledger/database"
	"github.com/forgecoin/forgecoin/foundation/ledger/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newTx(t *testing.T, from string, to string, value uint64) database.Tx {
	t.Helper()

	tx, err := database.NewTx(database.AccountID(from), database.AccountID(to), value, 0)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to create transaction: %v", failed, err)
	}

	return tx
}

// =============================================================================

func Test_InsertionOrder(t *testing.T) {
	from := "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"
	to := "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32"

	t.Log("Given the need to keep transactions in admission order.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen adding transactions and picking a block's worth.", testID)
		{
			mp := mempool.New()

			values := []uint64{10, 20, 30, 40, 50}
			for _, v := range values {
				mp.Add(newTx(t, from, to, v))
			}
			t.Logf("\t%s\tTest %d:\tShould be able to add %d transactions.", success, testID, len(values))

			if mp.Count() != len(values) {
				t.Fatalf("\t%s\tTest %d:\tShould count %d transactions, got %d.", failed, testID, len(values), mp.Count())
			}
			t.Logf("\t%s\tTest %d:\tShould count %d transactions.", success, testID, len(values))

			picked := mp.PickBest(3)
			if len(picked) != 3 {
				t.Fatalf("\t%s\tTest %d:\tShould pick exactly 3 transactions, got %d.", failed, testID, len(picked))
			}
			t.Logf("\t%s\tTest %d:\tShould pick exactly 3 transactions.", success, testID)

			for i, tx := range picked {
				if tx.Value != values[i] {
					t.Errorf("\t%s\tTest %d:\tShould pick in admission order, got %d at %d, exp %d.", failed, testID, tx.Value, i, values[i])
				} else {
					t.Logf("\t%s\tTest %d:\tShould pick in admission order for index %d.", success, testID, i)
				}
			}

			if mp.Count() != len(values) {
				t.Errorf("\t%s\tTest %d:\tShould leave the pool untouched after a pick, got %d.", failed, testID, mp.Count())
			} else {
				t.Logf("\t%s\tTest %d:\tShould leave the pool untouched after a pick.", success, testID)
			}
		}
	}
}

func Test_Delete(t *testing.T) {
	from := "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"
	to := "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32"

	t.Log("Given the need to remove mined transactions from the pool.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen deleting one transaction out of three.", testID)
		{
			mp := mempool.New()

			tx1 := newTx(t, from, to, 10)
			tx2 := newTx(t, from, to, 20)
			tx3 := newTx(t, from, to, 30)
			mp.Add(tx1)
			mp.Add(tx2)
			mp.Add(tx3)

			mp.Delete(tx2)

			if mp.Count() != 2 {
				t.Fatalf("\t%s\tTest %d:\tShould have 2 transactions left, got %d.", failed, testID, mp.Count())
			}
			t.Logf("\t%s\tTest %d:\tShould have 2 transactions left.", success, testID)

			left := mp.Copy()
			if left[0] != tx1 || left[1] != tx3 {
				t.Errorf("\t%s\tTest %d:\tShould keep the remaining transactions in order.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould keep the remaining transactions in order.", success, testID)
			}

			mp.Truncate()
			if mp.Count() != 0 {
				t.Errorf("\t%s\tTest %d:\tShould be empty after a truncate, got %d.", failed, testID, mp.Count())
			} else {
				t.Logf("\t%s\tTest %d:\tShould be empty after a truncate.", success, testID)
			}
		}
	}
}
