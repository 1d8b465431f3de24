package digest_test

import (
	"testing"

	"github.com/forgecoin/forgecoin/foundation/ledger/digest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Select(t *testing.T) {
	t.Log("Given the need to select the hash algorithm at startup.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen selecting supported and unsupported algorithms.", testID)
		{
			defer digest.Select(digest.SHA256)

			if err := digest.Select(digest.SHA256); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to select sha256: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to select sha256.", success, testID)

			shaHash := digest.Hash("value")
			if len(shaHash) != 66 {
				t.Errorf("\t%s\tTest %d:\tShould produce a 32 byte hex hash, got len %d.", failed, testID, len(shaHash))
			} else {
				t.Logf("\t%s\tTest %d:\tShould produce a 32 byte hex hash.", success, testID)
			}

			if err := digest.Select(digest.Keccak256); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to select keccak256: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to select keccak256.", success, testID)

			keccakHash := digest.Hash("value")
			if keccakHash == shaHash {
				t.Errorf("\t%s\tTest %d:\tShould produce different hashes per algorithm.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould produce different hashes per algorithm.", success, testID)
			}

			if err := digest.Select("md5"); err == nil {
				t.Errorf("\t%s\tTest %d:\tShould reject an unknown algorithm.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould reject an unknown algorithm.", success, testID)
			}
		}
	}
}

func Test_Deterministic(t *testing.T) {
	t.Log("Given the need for stable hashes over equal values.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen hashing the same value twice.", testID)
		{
			type payload struct {
				Name  string
				Count int
			}

			h1 := digest.Hash(payload{Name: "a", Count: 1})
			h2 := digest.Hash(payload{Name: "a", Count: 1})
			if h1 != h2 {
				t.Fatalf("\t%s\tTest %d:\tShould hash equal values identically.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould hash equal values identically.", success, testID)

			h3 := digest.Hash(payload{Name: "a", Count: 2})
			if h3 == h1 {
				t.Errorf("\t%s\tTest %d:\tShould hash different values differently.", failed, testID)
			} else {
				t.Logf("\t%s\tTest %d:\tShould hash different values differently.", success, testID)
			}
		}
	}
}
