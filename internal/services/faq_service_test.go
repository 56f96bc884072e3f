package services

import (
	"context"
	"errors"
	"testing"
)

func TestFAQ_CRUD(t *testing.T) {
	svc := NewFAQService(newServiceDB(t))
	ctx := context.Background()

	if _, err := svc.Create(ctx, " ", "a"); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank question: want ErrValidation, got %v", err)
	}

	a, err := svc.Create(ctx, "Berapa lama sesi foto?", "Sekitar 3 jam.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, _ := svc.Create(ctx, "Apakah bisa DP?", "Bisa, 30%.")

	list, err := svc.List(ctx)
	if err != nil || len(list) != 2 || list[0].ID != a.ID || list[1].ID != b.ID {
		t.Fatalf("List = %+v err=%v", list, err)
	}

	up, err := svc.Update(ctx, a.ID, "Berapa lama sesi foto prewedding?", "Sekitar 4 jam.")
	if err != nil || up.Answer != "Sekitar 4 jam." {
		t.Fatalf("Update = %+v err=%v", up, err)
	}
	if _, err := svc.Update(ctx, 999, "q", "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update missing: want ErrNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete twice must not fail: %v", err)
	}
	list, _ = svc.List(ctx)
	if len(list) != 1 {
		t.Fatalf("expected 1 row after delete, got %d", len(list))
	}
}

func TestFAQ_Search_RanksAndTracksMutations(t *testing.T) {
	svc := NewFAQService(newServiceDB(t))
	ctx := context.Background()

	loc, _ := svc.Create(ctx, "Di mana lokasi studio?", "Di Denpasar, Bali.")
	_, _ = svc.Create(ctx, "Berapa harga paket wedding?", "Mulai Rp 3.500.000.")

	hits, err := svc.Search(ctx, "lokasi studio dimana", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) == 0 || hits[0].FAQ.ID != loc.ID || hits[0].Score <= 0 {
		t.Fatalf("unexpected hits %+v", hits)
	}

	// new rows become searchable without a restart
	created, _ := svc.Create(ctx, "Apakah menerima jasa drone?", "Ya, tersedia.")
	best, err := svc.Best(ctx, "jasa drone")
	if err != nil || best == nil || best.FAQ.ID != created.ID {
		t.Fatalf("Best after create = %+v err=%v", best, err)
	}

	// deleted rows disappear
	_ = svc.Delete(ctx, created.ID)
	if best, _ := svc.Best(ctx, "jasa drone"); best != nil {
		t.Fatalf("deleted entry still matched: %+v", best)
	}

	if hits, _ := svc.Search(ctx, "   ", 3); len(hits) != 0 {
		t.Fatalf("blank query should return no hits, got %d", len(hits))
	}
}
