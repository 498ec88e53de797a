package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/tax_compare_app/internal/apperrors"
	"github.com/SscSPs/tax_compare_app/internal/core/domain"
	portssvc "github.com/SscSPs/tax_compare_app/internal/core/ports/services"
	"github.com/SscSPs/tax_compare_app/internal/dto"
	"github.com/SscSPs/tax_compare_app/internal/handlers"
	"github.com/SscSPs/tax_compare_app/internal/middleware"
	"github.com/SscSPs/tax_compare_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret = "test-secret"
	testIssuer    = "tax-compare-app"
	testAdminID   = "admin-1"
)

type HandlersTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockComparison     *MockTaxComparisonService
	mockSchedule       *MockTaxScheduleService
	mockExchangeRate   *MockExchangeRateService
	adminToken         string
	foreignIssuerToken string
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockComparison = new(MockTaxComparisonService)
	suite.mockSchedule = new(MockTaxScheduleService)
	suite.mockExchangeRate = new(MockExchangeRateService)

	cfg := &config.Config{
		IsProduction: true,
		JWTSecret:    testJWTSecret,
		JWTIssuer:    testIssuer,
	}
	container := &portssvc.ServiceContainer{
		TaxComparison: suite.mockComparison,
		TaxSchedule:   suite.mockSchedule,
		ExchangeRate:  suite.mockExchangeRate,
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container, nil, nil)

	var err error
	suite.adminToken, err = generateTestToken(testIssuer, testAdminID, time.Hour)
	suite.Require().NoError(err)
	suite.foreignIssuerToken, err = generateTestToken("someone-else", testAdminID, time.Hour)
	suite.Require().NoError(err)
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.mockComparison.AssertExpectations(suite.T())
	suite.mockSchedule.AssertExpectations(suite.T())
	suite.mockExchangeRate.AssertExpectations(suite.T())
}

func generateTestToken(issuer, subject string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
}

func (suite *HandlersTestSuite) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func floatPtr(f float64) *float64 { return &f }

func sampleComparison() *dto.TaxComparisonResponse {
	return &dto.TaxComparisonResponse{
		CountrySpecificData: map[string]dto.CountryTaxData{
			"Ireland": {
				Incomes:           []float64{0, 100},
				TaxAmounts:        []float64{0, 20},
				EffectiveTaxRates: []float64{0, 0.2},
				TaxBrackets:       []dto.TaxBracketDTO{{MarginalRate: 0.2}},
				Currency:          "EUR",
			},
		},
	}
}

// --- Health / home ---

func (suite *HandlersTestSuite) TestHealthAndHome() {
	w := suite.do(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())

	w = suite.do(http.MethodGet, "/", nil, "")
	suite.Equal(http.StatusOK, w.Code)
}

// --- Tax comparison ---

func (suite *HandlersTestSuite) TestCompareTaxes_Success() {
	body := map[string]any{
		"countries":       []string{"Ireland"},
		"income":          100,
		"max_income":      1000,
		"show_break_even": false,
	}
	suite.mockComparison.On("CompareTaxes", mock.Anything, mock.MatchedBy(func(req dto.TaxComparisonRequest) bool {
		return len(req.Countries) == 1 && req.Countries[0] == "Ireland" && req.MaxIncome == 1000 && req.Income != nil && *req.Income == 100
	})).Return(sampleComparison(), nil).Twice()

	for _, path := range []string{"/api/v1/taxes/compare", "/process"} {
		w := suite.do(http.MethodPost, path, body, "")
		suite.Equal(http.StatusOK, w.Code, path)

		var resp map[string]any
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		suite.Contains(resp["country_specific_data"], "Ireland")
		suite.Nil(resp["country_comb_data"], "comb data is null unless requested")
	}
}

func (suite *HandlersTestSuite) TestCompareTaxes_BindingErrors() {
	tests := []struct {
		name string
		body map[string]any
	}{
		{name: "missing countries", body: map[string]any{"max_income": 1000}},
		{name: "empty countries", body: map[string]any{"countries": []string{}, "max_income": 1000}},
		{name: "missing max income", body: map[string]any{"countries": []string{"Ireland"}}},
		{name: "negative max income", body: map[string]any{"countries": []string{"Ireland"}, "max_income": -1}},
		{name: "bad currency", body: map[string]any{"countries": []string{"Ireland"}, "max_income": 1000, "normalizing_currency": "EURO"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/taxes/compare", tt.body, "")
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
}

func (suite *HandlersTestSuite) TestCompareTaxes_ServiceErrors() {
	body := map[string]any{"countries": []string{"Ireland"}, "max_income": 1000}

	tests := []struct {
		err  error
		code int
	}{
		{err: fmt.Errorf("%w: max income above ceiling", apperrors.ErrInvalidInput), code: http.StatusBadRequest},
		{err: fmt.Errorf("%w: provider down", apperrors.ErrUnavailable), code: http.StatusBadGateway},
		{err: fmt.Errorf("boom"), code: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.mockComparison.On("CompareTaxes", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
		w := suite.do(http.MethodPost, "/api/v1/taxes/compare", body, "")
		suite.Equal(tt.code, w.Code, tt.err.Error())
	}
}

// --- Tax schedules ---

func (suite *HandlersTestSuite) TestListCountries() {
	suite.mockSchedule.On("ListTaxSchedules", mock.Anything).Return([]domain.CountryTaxSchedule{
		{Country: "Ireland", Currency: "EUR", Brackets: []domain.TaxBracket{{MarginalRate: 0.2, IncomeLimit: floatPtr(42000)}, {MarginalRate: 0.4}}},
		{Country: "Norway", Currency: "NOK", Brackets: []domain.TaxBracket{{MarginalRate: 0.22}}},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/countries", nil, "")
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListCountriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Countries, 2)
	suite.Equal(dto.CountryResponse{Country: "Ireland", Currency: "EUR", BracketCount: 2}, resp.Countries[0])
}

func (suite *HandlersTestSuite) TestGetTaxSchedule() {
	suite.mockSchedule.On("GetTaxSchedule", mock.Anything, "Ireland").Return(&domain.CountryTaxSchedule{
		Country: "Ireland", Currency: "EUR", Brackets: []domain.TaxBracket{{MarginalRate: 0.2, IncomeLimit: floatPtr(42000)}, {MarginalRate: 0.4}},
	}, nil).Once()
	suite.mockSchedule.On("GetTaxSchedule", mock.Anything, "Atlantis").Return(nil, fmt.Errorf("%w: tax schedule for Atlantis", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/countries/Ireland/schedule", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TaxScheduleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Schedule, 2)
	suite.Nil(resp.Schedule[1].IncomeLimit)

	w = suite.do(http.MethodGet, "/api/v1/countries/Atlantis/schedule", nil, "")
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestSaveTaxSchedule_RequiresToken() {
	body := map[string]any{"currency": "EUR", "schedule": []map[string]any{{"marginal_rate": 0.2, "income_limit": nil}}}

	w := suite.do(http.MethodPut, "/api/v1/admin/countries/Ireland/schedule", body, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPut, "/api/v1/admin/countries/Ireland/schedule", body, "not-a-jwt")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPut, "/api/v1/admin/countries/Ireland/schedule", body, suite.foreignIssuerToken)
	suite.Equal(http.StatusUnauthorized, w.Code)

	expired, err := generateTestToken(testIssuer, testAdminID, -time.Minute)
	suite.Require().NoError(err)
	w = suite.do(http.MethodPut, "/api/v1/admin/countries/Ireland/schedule", body, expired)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestSaveTaxSchedule_Success() {
	body := map[string]any{
		"currency": "EUR",
		"schedule": []map[string]any{
			{"marginal_rate": 0.2, "income_limit": 42000},
			{"marginal_rate": 0.4, "income_limit": nil},
		},
	}
	saved := &domain.CountryTaxSchedule{
		Country:  "Ireland",
		Currency: "EUR",
		Brackets: []domain.TaxBracket{{MarginalRate: 0.2, IncomeLimit: floatPtr(42000)}, {MarginalRate: 0.4}},
		AuditFields: domain.AuditFields{
			LastUpdatedAt: time.Now().UTC(),
			LastUpdatedBy: testAdminID,
		},
	}
	suite.mockSchedule.On("SaveTaxSchedule", mock.Anything, "Ireland", mock.MatchedBy(func(req dto.SaveTaxScheduleRequest) bool {
		return req.Currency == "EUR" && len(req.Schedule) == 2 && req.Schedule[1].IncomeLimit == nil
	}), testAdminID).Return(saved, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/admin/countries/Ireland/schedule", body, suite.adminToken)
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TaxScheduleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(testAdminID, resp.LastUpdatedBy)
}

func (suite *HandlersTestSuite) TestSaveTaxSchedule_Invalid() {
	badRate := map[string]any{"currency": "EUR", "schedule": []map[string]any{{"marginal_rate": 1.5, "income_limit": nil}}}
	w := suite.do(http.MethodPut, "/api/v1/admin/countries/Ireland/schedule", badRate, suite.adminToken)
	suite.Equal(http.StatusBadRequest, w.Code)

	nonIncreasing := map[string]any{"currency": "EUR", "schedule": []map[string]any{
		{"marginal_rate": 0.2, "income_limit": 100},
		{"marginal_rate": 0.3, "income_limit": 50},
	}}
	suite.mockSchedule.On("SaveTaxSchedule", mock.Anything, "Ireland", mock.Anything, testAdminID).
		Return(nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, apperrors.ErrInvalidSchedule)).Once()
	w = suite.do(http.MethodPut, "/api/v1/admin/countries/Ireland/schedule", nonIncreasing, suite.adminToken)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Exchange rates ---

func (suite *HandlersTestSuite) TestListExchangeRates() {
	suite.mockExchangeRate.On("GetExchangeRates", mock.Anything, "usd").Return(map[string]domain.ExchangeRate{
		"NZD": {FromCurrencyCode: "USD", ToCurrencyCode: "NZD", Rate: decimal.RequireFromString("1.68")},
		"EUR": {FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.RequireFromString("0.92")},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/usd", nil, "")
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListExchangeRatesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USD", resp.BaseCurrencyCode)
	suite.Require().Len(resp.Rates, 2)
	suite.Equal("EUR", resp.Rates[0].ToCurrencyCode)
	suite.Equal("NZD", resp.Rates[1].ToCurrencyCode)
}

func (suite *HandlersTestSuite) TestListExchangeRates_Unavailable() {
	suite.mockExchangeRate.On("GetExchangeRates", mock.Anything, "USD").
		Return(nil, fmt.Errorf("%w: provider down", apperrors.ErrUnavailable)).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/USD", nil, "")
	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *HandlersTestSuite) TestListExchangeRates_RejectedCode() {
	suite.mockExchangeRate.On("GetExchangeRates", mock.Anything, "ABC").
		Return(nil, fmt.Errorf("%w: unsupported-code", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/ABC", nil, "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestGetExchangeRate() {
	suite.mockExchangeRate.On("GetExchangeRate", mock.Anything, "USD", "EUR").Return(&domain.ExchangeRate{
		ExchangeRateID: "r1", FromCurrencyCode: "USD", ToCurrencyCode: "EUR", Rate: decimal.RequireFromString("0.92"),
	}, nil).Once()
	suite.mockExchangeRate.On("GetExchangeRate", mock.Anything, "USD", "JPY").
		Return(nil, fmt.Errorf("%w: no exchange rate from USD to JPY", apperrors.ErrNotFound)).Once()
	suite.mockExchangeRate.On("GetExchangeRate", mock.Anything, "USD", "USD").
		Return(nil, fmt.Errorf("%w: same currency", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/USD/EUR", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Rate.Equal(decimal.RequireFromString("0.92")))

	w = suite.do(http.MethodGet, "/api/v1/exchange-rates/USD/JPY", nil, "")
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/exchange-rates/USD/USD", nil, "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func TestRegisterRoutes_RateLimitsPublicRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	schedules := new(MockTaxScheduleService)
	schedules.On("ListTaxSchedules", mock.Anything).Return([]domain.CountryTaxSchedule{}, nil).Once()

	rateLimiter, err := middleware.NewMemoryLimiter("1-M")
	if err != nil {
		t.Fatalf("limiter: %v", err)
	}

	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{IsProduction: true}, &portssvc.ServiceContainer{
		TaxComparison: new(MockTaxComparisonService),
		TaxSchedule:   schedules,
		ExchangeRate:  new(MockExchangeRateService),
	}, nil, rateLimiter)

	codes := make([]int, 0, 2)
	for range 2 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/countries", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("expected [200 429], got %v", codes)
	}

	// Health checks are never limited.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("health: got %d", w.Code)
	}
	schedules.AssertExpectations(t)
}
