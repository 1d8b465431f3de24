package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forgecoin/forgecoin/foundation/ledger/database"
	"github.com/forgecoin/forgecoin/foundation/ledger/digest"
	"github.com/forgecoin/forgecoin/foundation/ledger/genesis"
	"github.com/forgecoin/forgecoin/foundation/ledger/storage/memory"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

var (
	aliceID = database.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	bobID   = database.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
	minerID = database.AccountID("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8")
)

func nopEv(v string, args ...any) {}

func newGenesis() genesis.Genesis {
	return genesis.Genesis{
		Date:           time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		ChainName:      "test-chain",
		TransPerBlock:  10,
		Difficulty:     1,
		MiningReward:   50,
		TargetInterval: 0,
		HashAlgorithm:  digest.SHA256,
		Balances: map[string]uint64{
			string(aliceID): 1000,
			string(bobID):   500,
		},
	}
}

// =============================================================================

func Test_GenesisBlock(t *testing.T) {
	t.Log("Given the need to validate a fresh chain starts with the genesis block.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen opening a database over empty storage.", testID)
		{
			storage, err := memory.New()
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to create storage: %v", failed, testID, err)
			}

			db, err := database.New(newGenesis(), storage, nopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to open database: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to open database.", success, testID)

			if db.BlockCount() != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould have exactly one block, got %d.", failed, testID, db.BlockCount())
			}
			t.Logf("\t%s\tTest %d:\tShould have exactly one block.", success, testID)

			genesisBlock, err := db.GenesisBlock()
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to read the genesis block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to read the genesis block.", success, testID)

			if genesisBlock.Header.Number != 0 {
				t.Errorf("\t%s\tTest %d:\tShould have block number 0, got %d.", failed, testID, genesisBlock.Header.Number)
			} else {
				t.Logf("\t%s\tTest %d:\tShould have block number 0.", success, testID)
			}

			if genesisBlock.Header.PrevBlockHash != digest.ZeroHash {
				t.Errorf("\t%s\tTest %d:\tShould have a zero previous hash, got %s.", failed, testID, genesisBlock.Header.PrevBlockHash)
			} else {
				t.Logf("\t%s\tTest %d:\tShould have a zero previous hash.", success, testID)
			}

			if len(genesisBlock.Trans) != 0 {
				t.Errorf("\t%s\tTest %d:\tShould carry no transactions, got %d.", failed, testID, len(genesisBlock.Trans))
			} else {
				t.Logf("\t%s\tTest %d:\tShould carry no transactions.", success, testID)
			}

			if db.Balance(aliceID) != 1000 || db.Balance(bobID) != 500 {
				t.Errorf("\t%s\tTest %d:\tShould have seeded balances, got %d and %d.", failed, testID, db.Balance(aliceID), db.Balance(bobID))
			} else {
				t.Logf("\t%s\tTest %d:\tShould have seeded balances.", success, testID)
			}
		}
	}
}

func Test_MineAndApply(t *testing.T) {
	t.Log("Given the need to seal a block and fold it into the balances.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen mining a block with one transfer and a reward.", testID)
		{
			storage, _ := memory.New()
			gen := newGenesis()

			db, err := database.New(gen, storage, nopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to open database: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to open database.", success, testID)

			tx, err := database.NewTx(aliceID, bobID, 100, 15)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to create transaction: %v", failed, testID, err)
			}
			trans := []database.Tx{tx, database.NewRewardTx(minerID, gen.MiningReward)}

			block, err := database.POW(context.Background(), minerID, gen.Difficulty, db.LatestBlock(), trans, nopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to mine a block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to mine a block.", success, testID)

			if err := block.ValidateBlock(db.LatestBlock(), nopEv); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould produce a valid block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould produce a valid block.", success, testID)

			if err := db.Write(block); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to write the block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to write the block.", success, testID)

			// Sender loses value plus tip, receiver gains value only, the
			// tip is burned, the miner gains only the reward.
			if got := db.Balance(aliceID); got != 1000-100-15 {
				t.Errorf("\t%s\tTest %d:\tShould debit the sender value plus tip, got %d, exp %d.", failed, testID, got, 1000-100-15)
			} else {
				t.Logf("\t%s\tTest %d:\tShould debit the sender value plus tip.", success, testID)
			}

			if got := db.Balance(bobID); got != 500+100 {
				t.Errorf("\t%s\tTest %d:\tShould credit the receiver the value only, got %d, exp %d.", failed, testID, got, 500+100)
			} else {
				t.Logf("\t%s\tTest %d:\tShould credit the receiver the value only.", success, testID)
			}

			if got := db.Balance(minerID); got != gen.MiningReward {
				t.Errorf("\t%s\tTest %d:\tShould credit the miner the reward only, got %d, exp %d.", failed, testID, got, gen.MiningReward)
			} else {
				t.Logf("\t%s\tTest %d:\tShould credit the miner the reward only.", success, testID)
			}

			if db.BlockCount() != 2 || db.TransCount() != 2 {
				t.Errorf("\t%s\tTest %d:\tShould count 2 blocks and 2 transactions, got %d and %d.", failed, testID, db.BlockCount(), db.TransCount())
			} else {
				t.Logf("\t%s\tTest %d:\tShould count 2 blocks and 2 transactions.", success, testID)
			}

			if err := db.ValidateChain(nopEv); err != nil {
				t.Errorf("\t%s\tTest %d:\tShould pass the full chain validation: %v", failed, testID, err)
			} else {
				t.Logf("\t%s\tTest %d:\tShould pass the full chain validation.", success, testID)
			}
		}
	}
}

func Test_RestartReplay(t *testing.T) {
	t.Log("Given the need to rebuild the balance view from storage on restart.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen reopening a database over existing storage.", testID)
		{
			storage, _ := memory.New()
			gen := newGenesis()

			db, err := database.New(gen, storage, nopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to open database: %v", failed, testID, err)
			}

			tx, _ := database.NewTx(aliceID, bobID, 250, 5)
			trans := []database.Tx{tx, database.NewRewardTx(minerID, gen.MiningReward)}

			block, err := database.POW(context.Background(), minerID, gen.Difficulty, db.LatestBlock(), trans, nopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to mine a block: %v", failed, testID, err)
			}
			if err := db.Write(block); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to write the block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to mine and write a block.", success, testID)

			// A second database over the same storage replays the chain.
			db2, err := database.New(gen, storage, nopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to reopen the database: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to reopen the database.", success, testID)

			if db2.BlockCount() != db.BlockCount() {
				t.Errorf("\t%s\tTest %d:\tShould replay the same block count, got %d, exp %d.", failed, testID, db2.BlockCount(), db.BlockCount())
			} else {
				t.Logf("\t%s\tTest %d:\tShould replay the same block count.", success, testID)
			}

			for _, id := range []database.AccountID{aliceID, bobID, minerID} {
				if db2.Balance(id) != db.Balance(id) {
					t.Errorf("\t%s\tTest %d:\tShould replay the same balance for %s, got %d, exp %d.", failed, testID, id, db2.Balance(id), db.Balance(id))
				} else {
					t.Logf("\t%s\tTest %d:\tShould replay the same balance for %s.", success, testID, id)
				}
			}

			if db2.LatestBlock().Hash() != db.LatestBlock().Hash() {
				t.Errorf("\t%s\tTest %d:\tShould agree on the chain tip.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould agree on the chain tip.", success, testID)
			}
		}
	}
}

func Test_POWCancel(t *testing.T) {
	t.Log("Given the need to stop a mining operation that is in flight.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen mining with a cancelled context.", testID)
		{
			storage, _ := memory.New()
			gen := newGenesis()
			gen.Difficulty = 6

			db, err := database.New(gen, storage, nopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to open database: %v", failed, testID, err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			trans := []database.Tx{database.NewRewardTx(minerID, gen.MiningReward)}

			if _, err := database.POW(ctx, minerID, gen.Difficulty, db.LatestBlock(), trans, nopEv); !errors.Is(err, database.ErrCancelled) {
				t.Fatalf("\t%s\tTest %d:\tShould get back ErrCancelled, got %v.", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould get back ErrCancelled.", success, testID)

			if db.BlockCount() != 1 {
				t.Errorf("\t%s\tTest %d:\tShould leave the chain untouched, got %d blocks.", failed, testID, db.BlockCount())
			} else {
				t.Logf("\t%s\tTest %d:\tShould leave the chain untouched.", success, testID)
			}
		}
	}
}

func Test_TamperDetection(t *testing.T) {
	t.Log("Given the need to detect tampering with stored blocks.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen mutating a transaction inside a stored block.", testID)
		{
			storage, _ := memory.New()
			gen := newGenesis()

			db, err := database.New(gen, storage, nopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to open database: %v", failed, testID, err)
			}

			tx, _ := database.NewTx(aliceID, bobID, 100, 0)
			trans := []database.Tx{tx, database.NewRewardTx(minerID, gen.MiningReward)}

			block, err := database.POW(context.Background(), minerID, gen.Difficulty, db.LatestBlock(), trans, nopEv)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to mine a block: %v", failed, testID, err)
			}
			if err := db.Write(block); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to write the block: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to mine and write a block.", success, testID)

			if err := db.ValidateChain(nopEv); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould validate the untampered chain: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould validate the untampered chain.", success, testID)

			// Rewrite the stored block with an inflated transfer while
			// keeping the original sealed hash.
			tampered, err := storage.GetBlock(1)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to read the stored block: %v", failed, testID, err)
			}
			tampered.Trans[0].Value = 999999
			if err := storage.Write(tampered); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to rewrite the stored block: %v", failed, testID, err)
			}

			if err := db.ValidateChain(nopEv); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould detect the tampered block.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould detect the tampered block.", success, testID)
		}
	}
}
