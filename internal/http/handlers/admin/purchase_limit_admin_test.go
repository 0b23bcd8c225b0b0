package admin

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/tokenlock/tokenlock-api/internal/constants"
	"github.com/tokenlock/tokenlock-api/internal/models"
	"github.com/tokenlock/tokenlock-api/internal/provider"
	"github.com/tokenlock/tokenlock-api/internal/service"

	"github.com/gin-gonic/gin"
)

type stubPurchaseLimitRepo struct {
	limits map[uint]*models.PurchaseLimit
	nextID uint
}

func newStubPurchaseLimitRepo() *stubPurchaseLimitRepo {
	return &stubPurchaseLimitRepo{limits: make(map[uint]*models.PurchaseLimit), nextID: 1}
}

func (r *stubPurchaseLimitRepo) List() ([]models.PurchaseLimit, error) {
	out := make([]models.PurchaseLimit, 0, len(r.limits))
	for _, l := range r.limits {
		out = append(out, *l)
	}
	return out, nil
}

func (r *stubPurchaseLimitRepo) GetByID(id uint) (*models.PurchaseLimit, error) {
	l, ok := r.limits[id]
	if !ok {
		return nil, nil
	}
	clone := *l
	return &clone, nil
}

func (r *stubPurchaseLimitRepo) GetByProductID(productID string) (*models.PurchaseLimit, error) {
	for _, l := range r.limits {
		if l.ProductID == productID {
			clone := *l
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubPurchaseLimitRepo) Create(limit *models.PurchaseLimit) error {
	limit.ID = r.nextID
	r.nextID++
	clone := *limit
	r.limits[limit.ID] = &clone
	return nil
}

func (r *stubPurchaseLimitRepo) Update(limit *models.PurchaseLimit) error {
	clone := *limit
	r.limits[limit.ID] = &clone
	return nil
}

func (r *stubPurchaseLimitRepo) Delete(id uint) error {
	delete(r.limits, id)
	return nil
}

func newPurchaseLimitTestRouter(repo *stubPurchaseLimitRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(&provider.Container{
		PurchaseLimitService: service.NewPurchaseLimitService(repo),
	})

	engine := gin.New()
	engine.POST("/purchase-limits", h.CreatePurchaseLimit)
	engine.GET("/purchase-limit-update/:id", h.GetPurchaseLimit)
	engine.PUT("/purchase-limit-update/:id", h.UpdatePurchaseLimit)
	return engine
}

func seedFixedLimit(t *testing.T, engine *gin.Engine) models.PurchaseLimit {
	t.Helper()
	rec, env := doJSON(t, engine, "POST", "/purchase-limits", map[string]interface{}{
		"product_id":     "prod_1",
		"product_name":   "Hoodie",
		"purchase_limit": 2,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed create failed: %d (body %s)", rec.Code, rec.Body.String())
	}
	var created models.PurchaseLimit
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode limit failed: %v", err)
	}
	return created
}

func TestUpdatePurchaseLimitLegacyTokenOwnedMarker(t *testing.T) {
	engine := newPurchaseLimitTestRouter(newStubPurchaseLimitRepo())
	created := seedFixedLimit(t, engine)

	// 旧版客户端以字符串标记开启 token-owned 模式
	rec, env := doJSON(t, engine, "PUT", "/purchase-limit-update/1", map[string]interface{}{
		"tokens_owned":   "token-owned",
		"purchase_limit": nil,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}

	var updated models.PurchaseLimit
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("decode limit failed: %v", err)
	}
	if updated.TokensOwned == nil {
		t.Fatal("expected token-owned marker set")
	}
	if updated.TokensOwned.Blockchain != constants.PlatformEthereum {
		t.Fatalf("expected default blockchain, got %q", updated.TokensOwned.Blockchain)
	}
	if updated.PurchaseLimit != nil {
		t.Fatalf("expected numeric limit cleared, got %v", *updated.PurchaseLimit)
	}
	if updated.ProductName != created.ProductName {
		t.Fatalf("product name changed: %q", updated.ProductName)
	}
}

func TestUpdatePurchaseLimitFalseClearsMarker(t *testing.T) {
	engine := newPurchaseLimitTestRouter(newStubPurchaseLimitRepo())
	seedFixedLimit(t, engine)

	rec, _ := doJSON(t, engine, "PUT", "/purchase-limit-update/1", map[string]interface{}{
		"tokens_owned": "token-owned",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("marker set failed: %d", rec.Code)
	}

	rec, env := doJSON(t, engine, "PUT", "/purchase-limit-update/1", map[string]interface{}{
		"tokens_owned":   false,
		"purchase_limit": 3,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}

	var updated models.PurchaseLimit
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("decode limit failed: %v", err)
	}
	if updated.TokensOwned != nil {
		t.Fatalf("expected marker cleared, got %+v", updated.TokensOwned)
	}
	if updated.PurchaseLimit == nil || *updated.PurchaseLimit != 3 {
		t.Fatalf("expected numeric limit 3, got %v", updated.PurchaseLimit)
	}
}

func TestUpdatePurchaseLimitTokenOwnedObjectForm(t *testing.T) {
	engine := newPurchaseLimitTestRouter(newStubPurchaseLimitRepo())
	seedFixedLimit(t, engine)

	rec, env := doJSON(t, engine, "PUT", "/purchase-limit-update/1", map[string]interface{}{
		"tokens_owned": map[string]interface{}{
			"blockchain":      "Solana",
			"contractAddress": "So11111111111111111111111111111111111111112",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}

	var updated models.PurchaseLimit
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("decode limit failed: %v", err)
	}
	if updated.TokensOwned == nil || updated.TokensOwned.Blockchain != "Solana" {
		t.Fatalf("unexpected token ref: %+v", updated.TokensOwned)
	}
}

func TestUpdatePurchaseLimitRejectsUnknownMarker(t *testing.T) {
	engine := newPurchaseLimitTestRouter(newStubPurchaseLimitRepo())
	seedFixedLimit(t, engine)

	rec, env := doJSON(t, engine, "PUT", "/purchase-limit-update/1", map[string]interface{}{
		"tokens_owned": "sometimes",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.Msg != "Invalid tokens owned value" {
		t.Fatalf("unexpected message %q", env.Msg)
	}
}
