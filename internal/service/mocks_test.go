package service

import (
	"sort"
	"time"

	"github.com/tokenlock/tokenlock-api/internal/models"
)

type mockUserRepo struct {
	nextID uint
	users  map[uint]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{nextID: 1, users: map[uint]*models.User{}}
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (m *mockUserRepo) Create(user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserRepo) Update(user *models.User) error {
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

type mockResetCodeRepo struct {
	nextID uint
	codes  map[uint]*models.PasswordResetCode
}

func newMockResetCodeRepo() *mockResetCodeRepo {
	return &mockResetCodeRepo{nextID: 1, codes: map[uint]*models.PasswordResetCode{}}
}

func (m *mockResetCodeRepo) GetLatest(email string) (*models.PasswordResetCode, error) {
	var latest *models.PasswordResetCode
	for _, c := range m.codes {
		if c.Email != email {
			continue
		}
		if latest == nil || c.ID > latest.ID {
			latest = c
		}
	}
	if latest == nil {
		return nil, nil
	}
	clone := *latest
	return &clone, nil
}

func (m *mockResetCodeRepo) Create(code *models.PasswordResetCode) error {
	code.ID = m.nextID
	m.nextID++
	clone := *code
	m.codes[code.ID] = &clone
	return nil
}

func (m *mockResetCodeRepo) IncrementAttempt(id uint) error {
	if c, ok := m.codes[id]; ok {
		c.AttemptCount++
	}
	return nil
}

func (m *mockResetCodeRepo) MarkVerified(id uint, at time.Time) error {
	if c, ok := m.codes[id]; ok {
		c.VerifiedAt = &at
	}
	return nil
}

func (m *mockResetCodeRepo) MarkConsumed(id uint, at time.Time) error {
	if c, ok := m.codes[id]; ok {
		c.ConsumedAt = &at
	}
	return nil
}

type mockCampaignRepo struct {
	nextID    uint
	campaigns map[uint]*models.Campaign
}

func newMockCampaignRepo() *mockCampaignRepo {
	return &mockCampaignRepo{nextID: 1, campaigns: map[uint]*models.Campaign{}}
}

func (m *mockCampaignRepo) List() ([]models.Campaign, error) {
	out := make([]models.Campaign, 0, len(m.campaigns))
	for _, c := range m.campaigns {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockCampaignRepo) GetByID(id uint) (*models.Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (m *mockCampaignRepo) Create(campaign *models.Campaign) error {
	campaign.ID = m.nextID
	m.nextID++
	clone := *campaign
	m.campaigns[campaign.ID] = &clone
	return nil
}

func (m *mockCampaignRepo) Update(campaign *models.Campaign) error {
	existing, ok := m.campaigns[campaign.ID]
	if ok {
		campaign.CreatedAt = existing.CreatedAt
	}
	clone := *campaign
	m.campaigns[campaign.ID] = &clone
	return nil
}

func (m *mockCampaignRepo) UpdateStatus(id uint, status int) error {
	if c, ok := m.campaigns[id]; ok {
		c.CampaignStatus = status
	}
	return nil
}

func (m *mockCampaignRepo) Delete(id uint) error {
	delete(m.campaigns, id)
	return nil
}

type mockPurchaseLimitRepo struct {
	nextID uint
	limits map[uint]*models.PurchaseLimit
}

func newMockPurchaseLimitRepo() *mockPurchaseLimitRepo {
	return &mockPurchaseLimitRepo{nextID: 1, limits: map[uint]*models.PurchaseLimit{}}
}

func (m *mockPurchaseLimitRepo) List() ([]models.PurchaseLimit, error) {
	out := make([]models.PurchaseLimit, 0, len(m.limits))
	for _, l := range m.limits {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockPurchaseLimitRepo) GetByID(id uint) (*models.PurchaseLimit, error) {
	l, ok := m.limits[id]
	if !ok {
		return nil, nil
	}
	clone := *l
	return &clone, nil
}

func (m *mockPurchaseLimitRepo) GetByProductID(productID string) (*models.PurchaseLimit, error) {
	for _, l := range m.limits {
		if l.ProductID == productID {
			clone := *l
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockPurchaseLimitRepo) Create(limit *models.PurchaseLimit) error {
	limit.ID = m.nextID
	m.nextID++
	clone := *limit
	m.limits[limit.ID] = &clone
	return nil
}

func (m *mockPurchaseLimitRepo) Update(limit *models.PurchaseLimit) error {
	clone := *limit
	m.limits[limit.ID] = &clone
	return nil
}

func (m *mockPurchaseLimitRepo) Delete(id uint) error {
	delete(m.limits, id)
	return nil
}

type mockWidgetSettingRepo struct {
	setting *models.WidgetSetting
}

func newMockWidgetSettingRepo() *mockWidgetSettingRepo {
	return &mockWidgetSettingRepo{}
}

func (m *mockWidgetSettingRepo) Get() (*models.WidgetSetting, error) {
	if m.setting == nil {
		return nil, nil
	}
	clone := *m.setting
	return &clone, nil
}

func (m *mockWidgetSettingRepo) Save(setting *models.WidgetSetting) error {
	if setting.ID == 0 {
		setting.ID = 1
	}
	clone := *setting
	m.setting = &clone
	return nil
}

type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) SendPasswordResetOTP(toEmail, code string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, code)
	return nil
}
