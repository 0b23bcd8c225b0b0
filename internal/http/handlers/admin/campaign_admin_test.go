package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/tokenlock/tokenlock-api/internal/models"
	"github.com/tokenlock/tokenlock-api/internal/provider"
	"github.com/tokenlock/tokenlock-api/internal/service"

	"github.com/gin-gonic/gin"
)

type stubCampaignRepo struct {
	campaigns map[uint]*models.Campaign
	nextID    uint
}

func newStubCampaignRepo() *stubCampaignRepo {
	return &stubCampaignRepo{campaigns: make(map[uint]*models.Campaign), nextID: 1}
}

func (r *stubCampaignRepo) List() ([]models.Campaign, error) {
	out := make([]models.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubCampaignRepo) GetByID(id uint) (*models.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (r *stubCampaignRepo) Create(campaign *models.Campaign) error {
	campaign.ID = r.nextID
	r.nextID++
	clone := *campaign
	r.campaigns[campaign.ID] = &clone
	return nil
}

func (r *stubCampaignRepo) Update(campaign *models.Campaign) error {
	clone := *campaign
	r.campaigns[campaign.ID] = &clone
	return nil
}

func (r *stubCampaignRepo) UpdateStatus(id uint, status int) error {
	if c, ok := r.campaigns[id]; ok {
		c.CampaignStatus = status
	}
	return nil
}

func (r *stubCampaignRepo) Delete(id uint) error {
	delete(r.campaigns, id)
	return nil
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newCampaignTestRouter(repo *stubCampaignRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(&provider.Container{
		CampaignService: service.NewCampaignService(repo, nil),
	})

	engine := gin.New()
	// 模拟鉴权中间件写入的会话上下文
	engine.Use(func(c *gin.Context) {
		c.Set("user_id", uint(7))
		c.Set("username", "merchant")
	})
	engine.GET("/campaigns", h.ListCampaigns)
	engine.POST("/campaigns", h.CreateCampaign)
	engine.GET("/campaigns/:id", h.GetCampaign)
	engine.PATCH("/campaigns/:id", h.UpdateCampaignStatus)
	engine.DELETE("/campaigns/:id", h.DeleteCampaign)
	return engine
}

func campaignBody() map[string]interface{} {
	return map[string]interface{}{
		"campaignName":     "BAYC Early Access",
		"campaignType":     "exclusive",
		"offerHeading":     "Holders only",
		"offerDescription": "Early access for holders",
		"startDate":        time.Now().Format(time.RFC3339),
		"endDate":          time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"eligibilityConditions": []map[string]interface{}{
			{
				"type":            "ownToken",
				"platform":        "Ethereum",
				"quantity":        "1",
				"contractAddress": "0xabc",
				"tokenIds":        []string{"1"},
			},
		},
		"productSelectionType": "all",
		"evaluateCondition":    "all",
		"campaignStatus":       1,
	}
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response failed: %v (body %s)", err, rec.Body.String())
	}
	return rec, env
}

func TestCreateCampaignEndpoint(t *testing.T) {
	engine := newCampaignTestRouter(newStubCampaignRepo())

	rec, env := doJSON(t, engine, "POST", "/campaigns", campaignBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body %s)", rec.Code, rec.Body.String())
	}

	var created models.Campaign
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode campaign failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if created.CampaignName != "BAYC Early Access" {
		t.Fatalf("unexpected name %q", created.CampaignName)
	}
}

func TestCreateCampaignStatusDefaultsToActive(t *testing.T) {
	engine := newCampaignTestRouter(newStubCampaignRepo())

	body := campaignBody()
	delete(body, "campaignStatus")
	rec, env := doJSON(t, engine, "POST", "/campaigns", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body %s)", rec.Code, rec.Body.String())
	}

	var created models.Campaign
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode campaign failed: %v", err)
	}
	if created.CampaignStatus != 1 {
		t.Fatalf("expected default status 1, got %d", created.CampaignStatus)
	}

	// 创建响应与后续查询必须一致
	rec, env = doJSON(t, engine, "GET", fmt.Sprintf("/campaigns/%d", created.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed: %d", rec.Code)
	}
	var fetched models.Campaign
	if err := json.Unmarshal(env.Data, &fetched); err != nil {
		t.Fatalf("decode campaign failed: %v", err)
	}
	if fetched.CampaignStatus != 1 {
		t.Fatalf("expected stored status 1, got %d", fetched.CampaignStatus)
	}
}

func TestCreateCampaignExplicitInactiveStatusKept(t *testing.T) {
	engine := newCampaignTestRouter(newStubCampaignRepo())

	body := campaignBody()
	body["campaignStatus"] = 0
	rec, env := doJSON(t, engine, "POST", "/campaigns", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body %s)", rec.Code, rec.Body.String())
	}

	var created models.Campaign
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode campaign failed: %v", err)
	}
	if created.CampaignStatus != 0 {
		t.Fatalf("expected explicit status 0 kept, got %d", created.CampaignStatus)
	}
}

func TestCreateCampaignMissingFields(t *testing.T) {
	engine := newCampaignTestRouter(newStubCampaignRepo())

	body := campaignBody()
	delete(body, "campaignName")
	rec, env := doJSON(t, engine, "POST", "/campaigns", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.Msg != "Missing required fields" {
		t.Fatalf("unexpected message %q", env.Msg)
	}
}

func TestGetCampaignNotFound(t *testing.T) {
	engine := newCampaignTestRouter(newStubCampaignRepo())

	rec, env := doJSON(t, engine, "GET", "/campaigns/99", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env.Msg != "Campaign not found" {
		t.Fatalf("unexpected message %q", env.Msg)
	}
}

func TestUpdateCampaignStatusEndpoint(t *testing.T) {
	repo := newStubCampaignRepo()
	engine := newCampaignTestRouter(repo)

	if rec, _ := doJSON(t, engine, "POST", "/campaigns", campaignBody()); rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}

	rec, env := doJSON(t, engine, "PATCH", "/campaigns/1", map[string]interface{}{"campaignStatus": 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}

	var updated models.Campaign
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("decode campaign failed: %v", err)
	}
	if updated.CampaignStatus != 0 {
		t.Fatalf("expected status 0, got %d", updated.CampaignStatus)
	}

	rec, env = doJSON(t, engine, "PATCH", "/campaigns/1", map[string]interface{}{"campaignStatus": 5})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.Msg != "Invalid status value" {
		t.Fatalf("unexpected message %q", env.Msg)
	}
}

func TestDeleteCampaignEndpoint(t *testing.T) {
	engine := newCampaignTestRouter(newStubCampaignRepo())

	if rec, _ := doJSON(t, engine, "POST", "/campaigns", campaignBody()); rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", rec.Code)
	}

	rec, env := doJSON(t, engine, "DELETE", "/campaigns/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.Msg != "Campaign deleted successfully" {
		t.Fatalf("unexpected message %q", env.Msg)
	}

	rec, _ = doJSON(t, engine, "DELETE", "/campaigns/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
