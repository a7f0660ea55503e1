package cart

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Kaushal-00/ecobazaar-terminal-go/internal/eco"
)

// fakeRemote records calls and can be told to fail.
type fakeRemote struct {
	cart     eco.Cart
	failNext error
	calls    []string
}

func (f *fakeRemote) fail() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeRemote) FetchCart(ctx context.Context, userID int64) (*eco.Cart, error) {
	f.calls = append(f.calls, "fetch")
	if err := f.fail(); err != nil {
		return nil, err
	}
	cart := f.cart
	return &cart, nil
}

func (f *fakeRemote) AddCartItem(ctx context.Context, userID, productID int64, quantity int) error {
	f.calls = append(f.calls, "add")
	return f.fail()
}

func (f *fakeRemote) UpdateCartItem(ctx context.Context, userID, productID int64, quantity int) error {
	f.calls = append(f.calls, "update")
	return f.fail()
}

func (f *fakeRemote) RemoveCartItem(ctx context.Context, userID, productID int64) error {
	f.calls = append(f.calls, "remove")
	return f.fail()
}

func (f *fakeRemote) ClearCart(ctx context.Context, userID int64) error {
	f.calls = append(f.calls, "clear")
	return f.fail()
}

func newTestSession(remote *fakeRemote) *Session {
	s := NewSession(remote)
	s.SetUser(7)
	return s
}

func TestAnonymousOpsMakeNoRequest(t *testing.T) {
	remote := &fakeRemote{}
	s := NewSession(remote)

	ops := map[string]func() error{
		"load":   func() error { return s.Load(context.Background()) },
		"add":    func() error { return s.Add(context.Background(), eco.Product{ID: 1}, 1) },
		"setqty": func() error { return s.SetQuantity(context.Background(), 1, 2) },
		"remove": func() error { return s.Remove(context.Background(), 1) },
		"clear":  func() error { return s.Clear(context.Background()) },
	}

	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("%s: expected ErrNotAuthenticated, got %v", name, err)
		}
	}
	if len(remote.calls) != 0 {
		t.Errorf("expected no remote calls, got %v", remote.calls)
	}
}

func TestLoadTranslatesRemoteCart(t *testing.T) {
	remote := &fakeRemote{
		cart: eco.Cart{
			UserID: 7,
			Items: []eco.CartItem{
				{ProductID: 1, Name: "Solar Lamp", Price: 29.99, Quantity: 2},
			},
		},
	}
	s := newTestSession(remote)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !s.Loaded() {
		t.Error("expected session to be loaded")
	}
	items := s.Items()
	if len(items) != 1 || items[0].Name != "Solar Lamp" || items[0].Quantity != 2 {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestAddAppendsSnapshotAfterSuccess(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestSession(remote)

	p := eco.Product{
		ID: 3, Name: "Herb Planter", Category: "Home & Garden",
		Price: 19.99, CarbonFootprint: 1.0, StockQuantity: 5,
	}
	if err := s.Add(context.Background(), p, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	line, ok := s.Line(3)
	if !ok {
		t.Fatal("expected line for product 3")
	}
	if line.Category != "home & garden" {
		t.Errorf("expected lowercased category, got %q", line.Category)
	}
	if line.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", line.Quantity)
	}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestSession(remote)

	p := eco.Product{ID: 3, Name: "Herb Planter", Price: 19.99}
	s.Add(context.Background(), p, 1)
	s.Add(context.Background(), p, 2)

	if s.Len() != 1 {
		t.Fatalf("expected single line, got %d", s.Len())
	}
	line, _ := s.Line(3)
	if line.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", line.Quantity)
	}
}

func TestFailedAddLeavesCartUnchanged(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestSession(remote)
	s.Add(context.Background(), eco.Product{ID: 1, Name: "A", Price: 5}, 1)

	before := s.Items()
	remote.failNext = errors.New("network down")

	err := s.Add(context.Background(), eco.Product{ID: 2, Name: "B", Price: 9}, 1)
	if err == nil {
		t.Fatal("expected error from failed add")
	}
	if !reflect.DeepEqual(s.Items(), before) {
		t.Errorf("cart changed after failed add:\nbefore: %+v\nafter:  %+v", before, s.Items())
	}
	if s.Busy() {
		t.Error("expected busy flag to be released after failure")
	}
}

func TestAddThenRemoveRestoresCart(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestSession(remote)
	s.Add(context.Background(), eco.Product{ID: 1, Name: "A", Price: 5}, 2)

	before := s.Items()

	p := eco.Product{ID: 9, Name: "New", Price: 3}
	if err := s.Add(context.Background(), p, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Remove(context.Background(), 9); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if !reflect.DeepEqual(s.Items(), before) {
		t.Errorf("add then remove did not restore cart:\nbefore: %+v\nafter:  %+v", before, s.Items())
	}
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestSession(remote)
	s.Add(context.Background(), eco.Product{ID: 1, Name: "A", Price: 5}, 2)

	remote.calls = nil
	if err := s.SetQuantity(context.Background(), 1, 0); err != nil {
		t.Fatalf("SetQuantity(0) failed: %v", err)
	}

	// went through the remove endpoint, not update
	if !reflect.DeepEqual(remote.calls, []string{"remove"}) {
		t.Errorf("expected a remove call, got %v", remote.calls)
	}
	if _, ok := s.Line(1); ok {
		t.Error("expected line to be gone after SetQuantity(0)")
	}
}

func TestSetQuantityUpdatesLine(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestSession(remote)
	s.Add(context.Background(), eco.Product{ID: 1, Name: "A", Price: 5}, 2)

	if err := s.SetQuantity(context.Background(), 1, 5); err != nil {
		t.Fatalf("SetQuantity failed: %v", err)
	}
	line, _ := s.Line(1)
	if line.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", line.Quantity)
	}
}

func TestFailedSetQuantityKeepsOldValue(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestSession(remote)
	s.Add(context.Background(), eco.Product{ID: 1, Name: "A", Price: 5}, 2)

	remote.failNext = errors.New("boom")
	if err := s.SetQuantity(context.Background(), 1, 10); err == nil {
		t.Fatal("expected error")
	}
	line, _ := s.Line(1)
	if line.Quantity != 2 {
		t.Errorf("expected quantity to stay 2, got %d", line.Quantity)
	}
}

func TestTotals(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestSession(remote)

	s.Add(context.Background(), eco.Product{ID: 1, Name: "A", Price: 20, CarbonFootprint: 1.5}, 2)
	s.Add(context.Background(), eco.Product{ID: 2, Name: "B", Price: 5, CarbonFootprint: 0.5}, 3)

	if got := s.Subtotal(); got != 55 {
		t.Errorf("expected subtotal 55, got %v", got)
	}
	if got := s.CarbonTotal(); got != 4.5 {
		t.Errorf("expected carbon total 4.5, got %v", got)
	}
	if got := s.ItemCount(); got != 5 {
		t.Errorf("expected 5 items, got %d", got)
	}
	if got := s.FormattedSubtotal(); got != "$55.00" {
		t.Errorf("unexpected formatted subtotal: %s", got)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestSession(remote)
	s.Add(context.Background(), eco.Product{ID: 1, Name: "A", Price: 5}, 1)

	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if !s.IsEmpty() {
		t.Error("expected cart to be empty after Clear")
	}
}

// blockingRemote parks AddCartItem until released.
type blockingRemote struct {
	fakeRemote
	entered chan struct{}
	release chan struct{}
}

func (b *blockingRemote) AddCartItem(ctx context.Context, userID, productID int64, quantity int) error {
	close(b.entered)
	<-b.release
	return nil
}

func TestBusyRejectsConcurrentMutation(t *testing.T) {
	remote := &blockingRemote{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewSession(remote)
	s.SetUser(7)

	done := make(chan error, 1)
	go func() {
		done <- s.Add(context.Background(), eco.Product{ID: 1, Name: "A"}, 1)
	}()

	<-remote.entered
	if !s.Busy() {
		t.Error("expected session to report busy while request is in flight")
	}
	if err := s.Remove(context.Background(), 1); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy for overlapping op, got %v", err)
	}

	close(remote.release)
	if err := <-done; err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	if s.Busy() {
		t.Error("expected busy flag released after completion")
	}
}

// blockingFetchRemote parks FetchCart until released.
type blockingFetchRemote struct {
	fakeRemote
	entered chan struct{}
	release chan struct{}
}

func (b *blockingFetchRemote) FetchCart(ctx context.Context, userID int64) (*eco.Cart, error) {
	close(b.entered)
	<-b.release
	return &eco.Cart{
		UserID: userID,
		Items:  []eco.CartItem{{ProductID: 1, Name: "Solar Lamp", Quantity: 2}},
	}, nil
}

func TestUserSwitchDiscardsInFlightResult(t *testing.T) {
	remote := &blockingFetchRemote{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewSession(remote)
	s.SetUser(7)

	done := make(chan error, 1)
	go func() {
		done <- s.Load(context.Background())
	}()

	// Detach while the fetch is in flight, as the expiry path does.
	<-remote.entered
	s.SetUser(0)
	close(remote.release)

	if err := <-done; err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !s.IsEmpty() {
		t.Error("expected detached session to stay empty")
	}
	if s.Loaded() {
		t.Error("expected detached session to stay unloaded")
	}
	if s.Busy() {
		t.Error("expected busy flag released after the stale load settled")
	}
}

func TestSetUserResetsWorkingCopy(t *testing.T) {
	remote := &fakeRemote{}
	s := newTestSession(remote)
	s.Add(context.Background(), eco.Product{ID: 1, Name: "A", Price: 5}, 1)

	s.SetUser(0)
	if s.Authenticated() {
		t.Error("expected detached session")
	}
	if !s.IsEmpty() {
		t.Error("expected working copy to reset on user change")
	}
}
