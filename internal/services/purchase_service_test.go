package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ArowuTest/lottery-ticket-backend/internal/apperrors"
	"github.com/ArowuTest/lottery-ticket-backend/internal/models"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories"
	"github.com/ArowuTest/lottery-ticket-backend/internal/repositories/memory"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/razorpay"
	"github.com/ArowuTest/lottery-ticket-backend/pkg/ticketart"
)

const testSecret = "rzp_test_secret"

type recordingScheduler struct {
	mu      sync.Mutex
	tickets []string
}

func (r *recordingScheduler) Schedule(ticket *models.Ticket, _ *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = append(r.tickets, ticket.TicketNumber)
}

// untouchedUsers and untouchedTickets panic on any call.
type untouchedUsers struct{ repositories.UserRepository }
type untouchedTickets struct{ repositories.TicketRepository }

func buyer(mobile string) *models.BuyerData {
	return &models.BuyerData{
		FullName: "Asha Verma",
		Mobile:   mobile,
		Email:    "",
		State:    "Kerala",
		Age:      30,
	}
}

func issueRequest(schemeID string, index int, b *models.BuyerData) IssueRequest {
	orderID := fmt.Sprintf("order_%s_%d", schemeID, index)
	paymentID := "pay_" + b.Mobile
	return IssueRequest{
		OrderID:     orderID,
		PaymentID:   paymentID,
		Signature:   razorpay.Signature(testSecret, orderID, paymentID),
		SchemeID:    schemeID,
		TicketIndex: index,
		Amount:      100,
		Buyer:       b,
	}
}

func newPurchaseFixture() (*memory.Store, *PurchaseService, *recordingScheduler) {
	store := memory.NewStore()
	sched := &recordingScheduler{}
	return store, NewPurchaseService(store.Users(), store.Tickets(), testSecret, sched), sched
}

func TestVerifyAndIssueIssuesTicket(t *testing.T) {
	store, svc, sched := newPurchaseFixture()

	res, err := svc.VerifyAndIssue(context.Background(), issueRequest("1", 1, buyer("9876543210")))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if res.Status != IssueIssued || res.Ticket.TicketNumber != "AB00001A" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Ticket.PaymentStatus != models.PaymentStatusPaid || res.Ticket.RazorpayPaymentID != "pay_9876543210" {
		t.Fatalf("unexpected ticket %+v", res.Ticket)
	}
	if len(res.User.Tickets) != 1 {
		t.Fatalf("expected buyer to carry 1 ticket, got %d", len(res.User.Tickets))
	}
	if len(sched.tickets) != 1 || sched.tickets[0] != "AB00001A" {
		t.Fatalf("expected artifact to be scheduled, got %v", sched.tickets)
	}
	if users, tickets := store.Counts(); users != 1 || tickets != 1 {
		t.Fatalf("expected 1 user and 1 ticket, got %d and %d", users, tickets)
	}
}

func TestVerifyAndIssueRejectsTamperedSignature(t *testing.T) {
	store, svc, sched := newPurchaseFixture()
	req := issueRequest("1", 1, buyer("9876543210"))
	req.Signature = razorpay.Signature(testSecret, req.OrderID, "pay_other")

	_, err := svc.VerifyAndIssue(context.Background(), req)
	if !errors.Is(err, apperrors.PaymentVerificationFailed) {
		t.Fatalf("expected PaymentVerificationFailed, got %v", err)
	}
	if users, tickets := store.Counts(); users != 0 || tickets != 0 {
		t.Fatalf("expected no rows, got %d users and %d tickets", users, tickets)
	}
	if len(sched.tickets) != 0 {
		t.Fatal("no artifact should be scheduled")
	}
}

func TestVerifyAndIssueSecondPurchaseIsDuplicate(t *testing.T) {
	store, svc, _ := newPurchaseFixture()
	ctx := context.Background()

	if _, err := svc.VerifyAndIssue(ctx, issueRequest("1", 1, buyer("9876543210"))); err != nil {
		t.Fatalf("first issue: %v", err)
	}
	for _, mobile := range []string{"9876543210", "9123456789"} {
		res, err := svc.VerifyAndIssue(ctx, issueRequest("1", 1, buyer(mobile)))
		if err != nil {
			t.Fatalf("second issue: %v", err)
		}
		if res.Status != IssueDuplicateTicket || res.TicketNumber != "AB00001A" {
			t.Fatalf("expected duplicate ticket, got %+v", res)
		}
	}
	if _, tickets := store.Counts(); tickets != 1 {
		t.Fatalf("expected exactly one ticket row, got %d", tickets)
	}
}

func TestVerifyAndIssueConcurrentPurchasesYieldOneTicket(t *testing.T) {
	store, svc, _ := newPurchaseFixture()

	const callers = 12
	results := make(chan *IssueResult, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mobile := "9876543210"
			if i%2 == 1 {
				mobile = fmt.Sprintf("91234567%02d", i)
			}
			res, err := svc.VerifyAndIssue(context.Background(), issueRequest("2", 42, buyer(mobile)))
			if err != nil {
				t.Errorf("issue: %v", err)
				return
			}
			results <- res
		}(i)
	}
	wg.Wait()
	close(results)

	issued, duplicates := 0, 0
	for res := range results {
		switch res.Status {
		case IssueIssued:
			issued++
		case IssueDuplicateTicket:
			duplicates++
		default:
			t.Errorf("unexpected status %s", res.Status)
		}
	}
	if issued != 1 || duplicates != callers-1 {
		t.Fatalf("expected 1 issued and %d duplicates, got %d and %d", callers-1, issued, duplicates)
	}
	if _, tickets := store.Counts(); tickets != 1 {
		t.Fatalf("expected one ticket row, got %d", tickets)
	}
}

// staleTickets misses a sale that commits between the availability check and the insert.
type staleTickets struct {
	repositories.TicketRepository
	creates int
}

func (r *staleTickets) FindBySchemeAndNumber(context.Context, string, string) (*models.Ticket, error) {
	return nil, repositories.ErrNotFound
}

func (r *staleTickets) Create(context.Context, *models.Ticket) error {
	r.creates++
	return &repositories.DuplicateKeyError{Collection: "tickets", Field: "ticketNumber"}
}

// staleUsers misses a buyer created by a concurrent first purchase.
type staleUsers struct{ repositories.UserRepository }

func (staleUsers) FindByMobileOrEmail(context.Context, string, string) (*models.User, error) {
	return nil, repositories.ErrNotFound
}

func TestVerifyAndIssueInsertConflictIsDuplicate(t *testing.T) {
	store := memory.NewStore()
	sched := &recordingScheduler{}
	tickets := &staleTickets{TicketRepository: store.Tickets()}
	svc := NewPurchaseService(store.Users(), tickets, testSecret, sched)

	res, err := svc.VerifyAndIssue(context.Background(), issueRequest("1", 5, buyer("9876543210")))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if res.Status != IssueDuplicateTicket || res.TicketNumber != "AB00005A" || res.Ticket != nil {
		t.Fatalf("expected duplicate_ticket for AB00005A, got %+v", res)
	}
	if tickets.creates != 1 {
		t.Fatalf("expected one insert attempt, got %d", tickets.creates)
	}
	if len(sched.tickets) != 0 {
		t.Fatalf("no artifact may be scheduled for a lost sale, got %v", sched.tickets)
	}
}

func TestVerifyAndIssueReusesBuyerCreatedConcurrently(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	existing := &models.User{FullName: "Asha Verma", Mobile: "9876543210", State: "Kerala", Age: 30}
	if err := store.Users().Create(ctx, existing); err != nil {
		t.Fatalf("seed buyer: %v", err)
	}
	svc := NewPurchaseService(staleUsers{store.Users()}, store.Tickets(), testSecret, nil)

	res, err := svc.VerifyAndIssue(ctx, issueRequest("1", 6, buyer("9876543210")))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if res.Status != IssueIssued || res.User.ID != existing.ID || res.Ticket.UserID != existing.ID {
		t.Fatalf("expected ticket for the existing buyer, got %+v", res)
	}
	if users, tickets := store.Counts(); users != 1 || tickets != 1 {
		t.Fatalf("expected 1 user and 1 ticket, got %d and %d", users, tickets)
	}
}

func TestVerifyAndIssueValidatesBeforePersistence(t *testing.T) {
	svc := NewPurchaseService(untouchedUsers{}, untouchedTickets{}, testSecret, nil)

	cases := []struct {
		name  string
		field string
		edit  func(*IssueRequest)
	}{
		{"short mobile", "mobile", func(r *IssueRequest) { r.Buyer.Mobile = "98765" }},
		{"letters in mobile", "mobile", func(r *IssueRequest) { r.Buyer.Mobile = "98765abcde" }},
		{"bad aadhaar", "aadhaar", func(r *IssueRequest) { r.Buyer.Aadhaar = "1234" }},
		{"minor", "age", func(r *IssueRequest) { r.Buyer.Age = 18 }},
		{"missing name", "fullName", func(r *IssueRequest) { r.Buyer.FullName = " " }},
		{"unknown scheme", "schemeId", func(r *IssueRequest) { r.SchemeID = "9" }},
		{"index out of range", "ticketNumber", func(r *IssueRequest) { r.TicketIndex = 10001 }},
		{"zero amount", "amount", func(r *IssueRequest) { r.Amount = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := issueRequest("1", 1, buyer("9876543210"))
			tc.edit(&req)
			_, err := svc.VerifyAndIssue(context.Background(), req)
			appErr := apperrors.As(err)
			if appErr == nil || appErr.Kind != apperrors.KindValidation || appErr.Field != tc.field {
				t.Fatalf("expected validation error on %s, got %v", tc.field, err)
			}
		})
	}
}

func TestVerifyAndIssueRequiresSecret(t *testing.T) {
	svc := NewPurchaseService(untouchedUsers{}, untouchedTickets{}, "", nil)
	_, err := svc.VerifyAndIssue(context.Background(), issueRequest("1", 1, buyer("9876543210")))
	if apperrors.KindOf(err) != apperrors.KindConfig {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestVerifyAndIssueIdentityConflict(t *testing.T) {
	store, svc, _ := newPurchaseFixture()
	ctx := context.Background()

	first := buyer("9876543210")
	first.Aadhaar = "123412341234"
	if _, err := svc.VerifyAndIssue(ctx, issueRequest("1", 1, first)); err != nil {
		t.Fatalf("first issue: %v", err)
	}

	second := buyer("9123456789")
	second.Aadhaar = "123412341234"
	res, err := svc.VerifyAndIssue(ctx, issueRequest("1", 2, second))
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}
	if res.Status != IssueIdentityConflict || res.Field != "aadhaar" {
		t.Fatalf("expected aadhaar identity conflict, got %+v", res)
	}
	if users, tickets := store.Counts(); users != 1 || tickets != 1 {
		t.Fatalf("expected 1 user and 1 ticket, got %d and %d", users, tickets)
	}
}

func TestVerifyAndIssueReusesBuyerByEmail(t *testing.T) {
	store, svc, _ := newPurchaseFixture()
	ctx := context.Background()

	first := buyer("9876543210")
	first.Email = "Asha@Example.com"
	if _, err := svc.VerifyAndIssue(ctx, issueRequest("1", 1, first)); err != nil {
		t.Fatalf("first issue: %v", err)
	}
	again := buyer("9876543210")
	again.Email = "asha@example.com"
	res, err := svc.VerifyAndIssue(ctx, issueRequest("3", 7, again))
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}
	if res.Status != IssueIssued || len(res.User.Tickets) != 2 {
		t.Fatalf("expected second ticket for the same buyer, got %+v", res)
	}
	if users, _ := store.Counts(); users != 1 {
		t.Fatalf("expected buyer to be reused, got %d users", users)
	}
}

func TestArtifactFailureDoesNotRollBackTicket(t *testing.T) {
	store := memory.NewStore()
	worker := NewArtifactWorker(store.Users(), store.Tickets(), t.TempDir(), "/tickets", 0).
		WithRenderer(func(ticketart.Card) ([]byte, error) { return nil, errors.New("renderer down") })
	svc := NewPurchaseService(store.Users(), store.Tickets(), testSecret, worker)

	res, err := svc.VerifyAndIssue(context.Background(), issueRequest("1", 5, buyer("9876543210")))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	worker.Wait()

	saved, err := store.Tickets().FindByID(context.Background(), res.Ticket.ID)
	if err != nil {
		t.Fatalf("ticket should survive a failed render: %v", err)
	}
	if saved.HasArtifact() {
		t.Fatalf("expected no download link, got %q", saved.DownloadLink)
	}
}

func TestArtifactIsBackfilledAndRerenderable(t *testing.T) {
	store := memory.NewStore()
	dir := t.TempDir()
	worker := NewArtifactWorker(store.Users(), store.Tickets(), dir, "tickets/", 0)
	svc := NewPurchaseService(store.Users(), store.Tickets(), testSecret, worker)
	ctx := context.Background()

	res, err := svc.VerifyAndIssue(ctx, issueRequest("4", 9999, buyer("9876543210")))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	worker.Wait()

	want := "/tickets/" + FileName(res.Ticket.ID)
	saved, _ := store.Tickets().FindByID(ctx, res.Ticket.ID)
	if saved.DownloadLink != want {
		t.Fatalf("expected link %q, got %q", want, saved.DownloadLink)
	}
	file := filepath.Join(dir, FileName(res.Ticket.ID))
	if err := os.Remove(file); err != nil {
		t.Fatalf("artifact file missing: %v", err)
	}

	rerendered, err := worker.Rerender(ctx, res.Ticket.ID.Hex())
	if err != nil {
		t.Fatalf("rerender: %v", err)
	}
	if rerendered.DownloadLink != want {
		t.Fatalf("unexpected link after rerender %q", rerendered.DownloadLink)
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("expected rerendered file: %v", err)
	}

	if _, err := worker.Rerender(ctx, "not-an-id"); apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReserve(t *testing.T) {
	_, svc, _ := newPurchaseFixture()
	ctx := context.Background()

	res, err := svc.Reserve(ctx, "1", 1)
	if err != nil || res.Status != ReserveAvailable || res.TicketNumber != "AB00001A" {
		t.Fatalf("expected available AB00001A, got %+v, %v", res, err)
	}
	if _, err := svc.VerifyAndIssue(ctx, issueRequest("1", 1, buyer("9876543210"))); err != nil {
		t.Fatalf("issue: %v", err)
	}
	res, err = svc.Reserve(ctx, "1", 1)
	if err != nil || res.Status != ReserveConflict {
		t.Fatalf("expected conflict, got %+v, %v", res, err)
	}
	if _, err := svc.Reserve(ctx, "1", 0); apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation error for index 0, got %v", err)
	}
}

func TestSoldIndices(t *testing.T) {
	_, svc, _ := newPurchaseFixture()
	ctx := context.Background()
	for i, idx := range []int{30, 4, 17} {
		if _, err := svc.VerifyAndIssue(ctx, issueRequest("2", idx, buyer(fmt.Sprintf("900000000%d", i)))); err != nil {
			t.Fatalf("issue %d: %v", idx, err)
		}
	}
	got, err := svc.SoldIndices(ctx, "2")
	if err != nil {
		t.Fatalf("sold indices: %v", err)
	}
	want := []int{4, 17, 30}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if empty, _ := svc.SoldIndices(ctx, "1"); len(empty) != 0 {
		t.Fatalf("expected no sold tickets in scheme 1, got %v", empty)
	}
}

func TestTicketsByMobile(t *testing.T) {
	_, svc, _ := newPurchaseFixture()
	ctx := context.Background()

	if _, err := svc.TicketsByMobile(ctx, "12345"); apperrors.KindOf(err) != apperrors.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.TicketsByMobile(ctx, "9876543210"); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.VerifyAndIssue(ctx, issueRequest("1", 3, buyer("9876543210"))); err != nil {
		t.Fatalf("issue: %v", err)
	}
	user, err := svc.TicketsByMobile(ctx, "9876543210")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if len(user.Tickets) != 1 || user.Tickets[0].TicketNumber != "AB00003A" {
		t.Fatalf("unexpected tickets %+v", user.Tickets)
	}
}
