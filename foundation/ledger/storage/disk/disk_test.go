package disk_test

import (
	"testing"

	"github.com/forgecoin/forgecoin/foundation/ledger/database"
	"github.com/forgecoin/forgecoin/foundation/ledger/digest"
	"github.com/forgecoin/forgecoin/foundation/ledger/storage/disk"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_ReadWrite(t *testing.T) {
	t.Log("Given the need to store and retrieve blocks on disk.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen writing blocks and reading them back.", testID)
		{
			d, err := disk.New(t.TempDir())
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to create storage: %v", failed, testID, err)
			}
			defer d.Close()
			t.Logf("\t%s\tTest %d:\tShould be able to create storage.", success, testID)

			blocks := []database.BlockData{
				{Hash: "0xaa", Header: database.BlockHeader{Number: 0, PrevBlockHash: digest.ZeroHash}},
				{Hash: "0xbb", Header: database.BlockHeader{Number: 1, PrevBlockHash: "0xaa"}},
				{Hash: "0xcc", Header: database.BlockHeader{Number: 2, PrevBlockHash: "0xbb"}},
			}
			for _, blockData := range blocks {
				if err := d.Write(blockData); err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to write block %d: %v", failed, testID, blockData.Header.Number, err)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould be able to write %d blocks.", success, testID, len(blocks))

			blockData, err := d.GetBlock(1)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to read block 1: %v", failed, testID, err)
			}
			if blockData.Hash != "0xbb" {
				t.Errorf("\t%s\tTest %d:\tShould read back the stored block, got %s.", failed, testID, blockData.Hash)
			} else {
				t.Logf("\t%s\tTest %d:\tShould read back the stored block.", success, testID)
			}

			var count int
			iter := d.ForEach()
			for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to iterate: %v", failed, testID, err)
				}
				if blockData.Header.Number != uint64(count) {
					t.Fatalf("\t%s\tTest %d:\tShould iterate in order, got %d at %d.", failed, testID, blockData.Header.Number, count)
				}
				count++
			}
			if count != len(blocks) {
				t.Errorf("\t%s\tTest %d:\tShould iterate %d blocks, got %d.", failed, testID, len(blocks), count)
			} else {
				t.Logf("\t%s\tTest %d:\tShould iterate %d blocks in order.", success, testID, len(blocks))
			}

			if err := d.Reset(); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to reset storage: %v", failed, testID, err)
			}
			iter = d.ForEach()
			if _, err := iter.Next(); !iter.Done() || err == nil {
				t.Errorf("\t%s\tTest %d:\tShould be empty after a reset.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould be empty after a reset.", success, testID)
			}
		}
	}
}
