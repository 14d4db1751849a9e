package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/warehouse-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type staticIdentity struct{ token string }

func (s staticIdentity) CurrentUser(context.Context) (*entity.User, error) {
	return &entity.User{ID: 1}, nil
}

func (s staticIdentity) AttachCredential(_ context.Context, req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.token)
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/api", 2*time.Second, staticIdentity{token: "remote-token"})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestListReceivingDecodesNumericIDsAndStringDecimals(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/transactions/" || r.URL.Query().Get("transaction_type") != "receive" {
			t.Errorf("unexpected request %s", r.URL)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer remote-token" {
			t.Errorf("authorization = %q", got)
		}
		w.Write([]byte(`[{"id": 7, "transaction_id": "R000007", "transaction_type": "receive",
			"warehouse": 1, "user": 2, "supplier": "Pepsi", "total_amount": "30.00",
			"timestamp": "2024-05-01T08:30:00Z", "notes": null,
			"items": [{"id": 11, "system_code": "C-12345", "unit_type": "box",
			"quantity": "3.00", "unit_price": 10, "amount": "30.00", "requires_return": true}]}]`))
	})

	records, err := c.ListReceiving(context.Background())
	if err != nil {
		t.Fatalf("ListReceiving: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d", len(records))
	}
	rec := records[0]
	if rec.ID != "7" || rec.Items[0].ID != "11" {
		t.Fatalf("ids = %q / %q", rec.ID, rec.Items[0].ID)
	}
	if !rec.TotalAmount.Equal(decimal.NewFromInt(30)) || !rec.Items[0].UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("decimals = %s / %s", rec.TotalAmount, rec.Items[0].UnitPrice)
	}
}

func TestCreateReceivingSendsSnakeCasePayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/transactions/receive_items/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if body["transaction_id"] != "R000001" || body["total_amount"] != "12.50" {
			t.Errorf("body = %v", body)
		}
		body["id"] = 99
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	})

	saved, err := c.CreateReceiving(context.Background(), &entity.TransactionRecord{
		TransactionID:   "R000001",
		TransactionType: entity.TransactionTypeReceive,
		Warehouse:       1,
		TotalAmount:     entity.NewFixedDecimal(decimal.RequireFromString("12.5")),
	})
	if err != nil {
		t.Fatalf("CreateReceiving: %v", err)
	}
	if saved.ID != "99" {
		t.Fatalf("id = %q", saved.ID)
	}
}

func TestNon2xxIsStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	err := c.DeleteReceiving(context.Background(), "5")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("err = %v", err)
	}
	if statusErr.ResponseBody() != "boom" || strings.Contains(err.Error(), "boom") {
		t.Fatalf("body leaked into %q", err.Error())
	}
}

func TestMalformedBodyIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	})
	if _, err := c.ListReceiving(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestTransportErrorIsError(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1/api/", time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.ListWarehouses(context.Background()); err == nil {
		t.Fatal("expected connection error")
	}
}

func TestObtainTokenAndCurrentUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/":
			if r.Header.Get("Authorization") != "" {
				t.Error("token request must not carry a credential")
			}
			w.Write([]byte(`{"access": "abc", "refresh": "def"}`))
		case "/api/users/me/":
			if r.Header.Get("Authorization") != "Bearer abc" {
				t.Errorf("authorization = %q", r.Header.Get("Authorization"))
			}
			w.Write([]byte(`{"id": 3, "email": "op@example.com", "username": "operator", "role": "staff"}`))
		default:
			http.NotFound(w, r)
		}
	})

	token, err := c.ObtainToken(context.Background(), "op@example.com", "secret")
	if err != nil || token != "abc" {
		t.Fatalf("token = %q, err = %v", token, err)
	}
	user, err := c.FetchCurrentUser(context.Background(), token)
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != 3 || user.Name != "operator" || user.Role != "staff" {
		t.Fatalf("user = %+v", user)
	}
}
