package patient

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type txMarker struct{}

// fakeTx runs fn directly, tagging the context so repo fakes can verify they
// were called inside the transaction callback.
type fakeTx struct {
	calls int
}

func (f *fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(context.WithValue(ctx, txMarker{}, true))
}

func inTx(ctx context.Context) bool {
	in, _ := ctx.Value(txMarker{}).(bool)
	return in
}

type fakeRepo struct {
	nextID   int64
	patients map[int64]*Patient

	lookupInTx bool
	createInTx bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, patients: make(map[int64]*Patient)}
}

func newService(repo *fakeRepo) *Service {
	return NewService(repo, &fakeTx{})
}

func (f *fakeRepo) Create(ctx context.Context, p *Patient) error {
	f.createInTx = inTx(ctx)
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.patients[p.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return p, nil
}

func (f *fakeRepo) Update(ctx context.Context, p *Patient) error {
	cp := *p
	f.patients[p.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	delete(f.patients, id)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, search string, limit, offset int) ([]Patient, int, error) {
	var out []Patient
	for _, p := range f.patients {
		if search == "" || strings.Contains(strings.ToLower(p.FullName), strings.ToLower(search)) {
			out = append(out, *p)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) FindByNormalizedName(ctx context.Context, normalized string) (*Ref, error) {
	f.lookupInTx = inTx(ctx)
	for _, p := range f.patients {
		if NormalizeName(p.FullName) == normalized {
			return &Ref{ID: p.ID, FullName: p.FullName}, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListRefs(ctx context.Context) ([]Ref, error) {
	var refs []Ref
	for _, p := range f.patients {
		refs = append(refs, Ref{ID: p.ID, FullName: p.FullName})
	}
	return refs, nil
}

func TestCreate_RejectsDuplicateName(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	first := &Patient{FullName: "Jane Doe"}
	if err := svc.Create(ctx, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same name in a different case must be rejected with the colliding id.
	err := svc.Create(ctx, &Patient{FullName: "  JANE DOE "})
	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
	if dup.ID != first.ID {
		t.Errorf("expected colliding id %d, got %d", first.ID, dup.ID)
	}
	if len(repo.patients) != 1 {
		t.Errorf("expected 1 patient, got %d", len(repo.patients))
	}
}

func TestCreate_RequiresName(t *testing.T) {
	svc := newService(newFakeRepo())
	if err := svc.Create(context.Background(), &Patient{FullName: "   "}); err == nil {
		t.Error("expected error for blank full_name")
	}
}

func TestUpdate_AllowsKeepingOwnName(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	p := &Patient{FullName: "Budi Santoso"}
	if err := svc.Create(ctx, p); err != nil {
		t.Fatal(err)
	}
	city := "KOTA BANDUNG"
	p.City = &city
	if err := svc.Update(ctx, p); err != nil {
		t.Errorf("updating a patient under its own name must not conflict: %v", err)
	}
}

func TestUpdate_RejectsTakingAnotherName(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	a := &Patient{FullName: "Ani"}
	b := &Patient{FullName: "Budi"}
	if err := svc.Create(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := svc.Create(ctx, b); err != nil {
		t.Fatal(err)
	}

	b.FullName = "ani"
	var dup *DuplicateNameError
	if err := svc.Update(ctx, b); !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateNameError, got %v", err)
	}
}

func TestCreate_ChecksAndInsertsInOneTransaction(t *testing.T) {
	repo := newFakeRepo()
	tx := &fakeTx{}
	svc := NewService(repo, tx)

	if err := svc.Create(context.Background(), &Patient{FullName: "Jane Doe"}); err != nil {
		t.Fatal(err)
	}
	if tx.calls != 1 {
		t.Fatalf("expected 1 transaction, got %d", tx.calls)
	}
	if !repo.lookupInTx || !repo.createInTx {
		t.Errorf("duplicate check (in tx: %v) and insert (in tx: %v) must share the transaction",
			repo.lookupInTx, repo.createInTx)
	}

	// Validation failures never open a transaction.
	if err := svc.Create(context.Background(), &Patient{FullName: " "}); err == nil {
		t.Fatal("expected error for blank full_name")
	}
	if tx.calls != 1 {
		t.Errorf("blank name opened a transaction, got %d calls", tx.calls)
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  Jane DOE "); got != "jane doe" {
		t.Errorf("got %q", got)
	}
}
