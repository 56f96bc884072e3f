package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:domain_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &FAQItem{}, &GalleryItem{}, &Package{}, &Review{}, &ChatHistoryEntry{}, &Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		User{}.TableName():             "users",
		FAQItem{}.TableName():          "faq",
		GalleryItem{}.TableName():      "gallery",
		Package{}.TableName():          "packages",
		Review{}.TableName():           "reviews",
		ChatHistoryEntry{}.TableName(): "chat_history",
		Idempotency{}.TableName():      "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range []string{"wedding", "prewedding", "lainnya"} {
		if !ValidCategory(c) {
			t.Fatalf("ValidCategory(%q) = false", c)
		}
	}
	for _, c := range []string{"", "Wedding", "portrait"} {
		if ValidCategory(c) {
			t.Fatalf("ValidCategory(%q) = true", c)
		}
	}
}

func TestMigrations_Indexes(t *testing.T) {
	db := newDomainDB(t)
	m := db.Migrator()

	if !m.HasIndex(&User{}, "ux_users_email") {
		t.Fatalf("expected unique index ux_users_email on users")
	}
	if !m.HasIndex(&ChatHistoryEntry{}, "SessionID") {
		t.Fatalf("expected index on chat_history.session_id")
	}
	if !m.HasIndex(&ChatHistoryEntry{}, "CreatedAt") {
		t.Fatalf("expected index on chat_history.created_at")
	}
	if !m.HasColumn(&Package{}, "is_popular") {
		t.Fatalf("expected packages.is_popular column")
	}
}

func TestUser_EmailUnique_DefaultRole_PasswordHidden(t *testing.T) {
	db := newDomainDB(t)

	u := &User{Name: "Ayu", Email: "ayu@example.com", Password: "hash"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	var got User
	if err := db.First(&got, u.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if got.Role != RoleUser || got.IsAdmin() {
		t.Fatalf("default role = %q; want user", got.Role)
	}
	if err := db.Create(&User{Name: "B", Email: "ayu@example.com", Password: "x"}).Error; err == nil {
		t.Fatalf("expected unique violation on duplicate email")
	}

	b, _ := json.Marshal(got)
	if strings.Contains(string(b), "password") || strings.Contains(string(b), "hash") {
		t.Fatalf("password leaked in JSON: %s", b)
	}
}

func TestPackage_FeaturesRoundTripInOrder(t *testing.T) {
	db := newDomainDB(t)

	p := &Package{Name: "Gold", Price: "Rp 3.500.000", Features: []string{"8 jam", "2 fotografer", "album"}, Popular: true}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create package: %v", err)
	}
	var got Package
	if err := db.First(&got, p.ID).Error; err != nil {
		t.Fatalf("load package: %v", err)
	}
	if len(got.Features) != 3 || got.Features[0] != "8 jam" || got.Features[2] != "album" || !got.Popular {
		t.Fatalf("unexpected package: %+v", got)
	}

	b, _ := json.Marshal(got)
	if !strings.Contains(string(b), `"features":["8 jam","2 fotografer","album"]`) || !strings.Contains(string(b), `"popular":true`) {
		t.Fatalf("unexpected JSON: %s", b)
	}
}

func TestReview_RatingCheck(t *testing.T) {
	db := newDomainDB(t)

	ok := &Review{CustomerName: "Made", Rating: 4, Date: time.Now().UTC()}
	if err := db.Create(ok).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}
	if err := db.Create(&Review{CustomerName: "X", Rating: 9, Date: time.Now().UTC()}).Error; err == nil {
		t.Fatalf("expected CHECK violation for rating 9")
	}
}

func TestChatHistoryEntry_NullableFields(t *testing.T) {
	db := newDomainDB(t)

	e := &ChatHistoryEntry{SessionID: "s1", UserMessage: "halo", BotResponse: "hai"}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("create entry: %v", err)
	}
	var got ChatHistoryEntry
	if err := db.First(&got, e.ID).Error; err != nil {
		t.Fatalf("load entry: %v", err)
	}
	if got.Intent != nil || got.Confidence != nil {
		t.Fatalf("expected nil intent/confidence, got %+v", got)
	}
	b, _ := json.Marshal(got)
	if !strings.Contains(string(b), `"intent":null`) {
		t.Fatalf("intent should serialize as null: %s", b)
	}
}
