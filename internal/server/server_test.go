package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/immocalc/property-calculator/internal/config"
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/immocalc/property-calculator/internal/service"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProjector struct {
	mock.Mock
}

func (m *mockProjector) Calculate(ctx context.Context, scenario domain.Scenario) (*domain.ScenarioSummary, error) {
	args := m.Called(ctx, scenario)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScenarioSummary), args.Error(1)
}

func (m *mockProjector) Compare(ctx context.Context, cfg domain.Configuration) (*domain.ScenarioComparison, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScenarioComparison), args.Error(1)
}

func (m *mockProjector) Sensitivity(ctx context.Context, req service.SensitivityRequest) (*domain.SensitivityGrid, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SensitivityGrid), args.Error(1)
}

func (m *mockProjector) Schedule(ctx context.Context, inputs domain.PropertyInputs) ([]domain.TrancheSchedule, error) {
	args := m.Called(ctx, inputs)
	return args.Get(0).([]domain.TrancheSchedule), args.Error(1)
}

func (m *mockProjector) MarginalTaxRate(profile domain.TaxProfile) (decimal.Decimal, error) {
	args := m.Called(profile)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(body []byte) (interface{}, error) {
		var v T
		err := json.Unmarshal(body, &v)
		return v, err
	}
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		setupMocks     func(m *mockProjector)
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:   "CalculateScenario",
			method: http.MethodPost,
			path:   "/api/v1/calculate",
			body:   `{"name":"flat","inputs":{"purchase_price":"300000"}}`,
			setupMocks: func(m *mockProjector) {
				m.On("Calculate", mock.Anything, mock.MatchedBy(func(s domain.Scenario) bool {
					return s.Name == "flat" && s.Inputs.PurchasePrice.Equal(decimal.NewFromInt(300000))
				})).Return(&domain.ScenarioSummary{Name: "flat"}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				got, err := unmarshalResponse[domain.ScenarioSummary]()(body)
				require.NoError(t, err)
				assert.Equal(t, "flat", got.(domain.ScenarioSummary).Name)
			},
		},
		{
			name:   "CalculateComparison",
			method: http.MethodPost,
			path:   "/api/v1/calculate",
			body:   `{"scenarios":[{"name":"a","inputs":{}},{"name":"b","inputs":{}}]}`,
			setupMocks: func(m *mockProjector) {
				m.On("Compare", mock.Anything, mock.MatchedBy(func(cfg domain.Configuration) bool {
					return len(cfg.Scenarios) == 2
				})).Return(&domain.ScenarioComparison{Recommendation: domain.Recommendation{ScenarioName: "b"}}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				got, err := unmarshalResponse[domain.ScenarioComparison]()(body)
				require.NoError(t, err)
				assert.Equal(t, "b", got.(domain.ScenarioComparison).Recommendation.ScenarioName)
			},
		},
		{
			name:           "CalculateEmptyBody",
			method:         http.MethodPost,
			path:           "/api/v1/calculate",
			body:           `{}`,
			setupMocks:     func(m *mockProjector) {},
			expectedStatus: http.StatusBadRequest,
			check:          expectError("request needs inputs or scenarios"),
		},
		{
			name:           "CalculateMalformedBody",
			method:         http.MethodPost,
			path:           "/api/v1/calculate",
			body:           `{"inputs":`,
			setupMocks:     func(m *mockProjector) {},
			expectedStatus: http.StatusBadRequest,
			check:          expectError("invalid request body"),
		},
		{
			name:   "CalculateInvalidInputs",
			method: http.MethodPost,
			path:   "/api/v1/calculate",
			body:   `{"inputs":{"purchase_price":"0"}}`,
			setupMocks: func(m *mockProjector) {
				m.On("Calculate", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: purchase_price must be positive", config.ErrInvalidInputs))
			},
			expectedStatus: http.StatusBadRequest,
			check:          expectError("purchase_price must be positive"),
		},
		{
			name:   "CalculateInternalError",
			method: http.MethodPost,
			path:   "/api/v1/calculate",
			body:   `{"inputs":{"purchase_price":"1"}}`,
			setupMocks: func(m *mockProjector) {
				m.On("Calculate", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			check:          expectError("internal error"),
		},
		{
			name:   "Sensitivity",
			method: http.MethodPost,
			path:   "/api/v1/sensitivity",
			body:   `{"inputs":{"purchase_price":"300000"},"interest_rates":["3","4"]}`,
			setupMocks: func(m *mockProjector) {
				m.On("Sensitivity", mock.Anything, mock.MatchedBy(func(req service.SensitivityRequest) bool {
					return len(req.InterestRates) == 2
				})).Return(&domain.SensitivityGrid{InterestRates: []decimal.Decimal{decimal.NewFromInt(3), decimal.NewFromInt(4)}}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				got, err := unmarshalResponse[domain.SensitivityGrid]()(body)
				require.NoError(t, err)
				assert.Len(t, got.(domain.SensitivityGrid).InterestRates, 2)
			},
		},
		{
			name:   "Schedule",
			method: http.MethodPost,
			path:   "/api/v1/schedule",
			body:   `{"inputs":{"purchase_price":"300000"}}`,
			setupMocks: func(m *mockProjector) {
				m.On("Schedule", mock.Anything, mock.Anything).
					Return([]domain.TrancheSchedule{{Name: "primary", TermMonths: 12}}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				got, err := unmarshalResponse[[]domain.TrancheSchedule]()(body)
				require.NoError(t, err)
				schedules := got.([]domain.TrancheSchedule)
				require.Len(t, schedules, 1)
				assert.Equal(t, "primary", schedules[0].Name)
			},
		},
		{
			name:   "TaxRate",
			method: http.MethodPost,
			path:   "/api/v1/tax-rate",
			body:   `{"annual_income":"80000","marital_status":"single","solidarity_tax":true}`,
			setupMocks: func(m *mockProjector) {
				m.On("MarginalTaxRate", mock.Anything).Return(decimal.RequireFromString("44.31"), nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"marginal_tax_rate":"44.31"}`, string(body))
			},
		},
		{
			name:           "DepreciationPresets",
			method:         http.MethodGet,
			path:           "/api/v1/presets/depreciation",
			setupMocks:     func(m *mockProjector) {},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				got, err := unmarshalResponse[[]domain.DepreciationPreset]()(body)
				require.NoError(t, err)
				assert.Len(t, got.([]domain.DepreciationPreset), 7)
			},
		},
		{
			name:           "Regions",
			method:         http.MethodGet,
			path:           "/api/v1/regions",
			setupMocks:     func(m *mockProjector) {},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				got, err := unmarshalResponse[[]domain.RegionTransferTax]()(body)
				require.NoError(t, err)
				regions := got.([]domain.RegionTransferTax)
				assert.Len(t, regions, 16)
				assert.Equal(t, "Baden-Württemberg", regions[0].Region)
			},
		},
		{
			name:           "Health",
			method:         http.MethodGet,
			path:           "/api/v1/health",
			setupMocks:     func(m *mockProjector) {},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"status":"ok"}`, string(body))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projector := new(mockProjector)
			tt.setupMocks(projector)

			router := ConfigureRouter(Config{
				Addr:            ":8080",
				ShutdownTimeout: 10 * time.Second,
				Dependencies: Dependencies{
					Projector: projector,
					Logger:    logger,
				},
			})
			testServer := httptest.NewServer(router)
			defer testServer.Close()

			var body io.Reader
			if tt.body != "" {
				body = bytes.NewBufferString(tt.body)
			}
			req, err := http.NewRequest(tt.method, testServer.URL+tt.path, body)
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			respBody, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedStatus, resp.StatusCode, string(respBody))
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			tt.check(t, respBody)
			projector.AssertExpectations(t)
		})
	}
}

func TestWebAPI_UnknownRoute(t *testing.T) {
	router := ConfigureRouter(Config{Dependencies: Dependencies{
		Projector: new(mockProjector),
		Logger:    zerolog.Nop(),
	}})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/api/v1/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebAPI_RecoversFromPanic(t *testing.T) {
	projector := new(mockProjector)
	projector.On("MarginalTaxRate", mock.Anything).Run(func(mock.Arguments) {
		panic("unexpected")
	}).Return(decimal.Zero, nil)

	router := ConfigureRouter(Config{Dependencies: Dependencies{
		Projector: projector,
		Logger:    zerolog.Nop(),
	}})
	testServer := httptest.NewServer(router)
	defer testServer.Close()

	resp, err := http.Post(testServer.URL+"/api/v1/tax-rate", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestNewWebAPI_DefaultShutdownTimeout(t *testing.T) {
	api := NewWebAPI(Config{Addr: ":0", Dependencies: Dependencies{Logger: zerolog.Nop()}})
	assert.Equal(t, defaultShutdownTimeout, api.shutdownTimeout)
	assert.Equal(t, ":0", api.server.Addr)
}

func expectError(substr string) func(t *testing.T, body []byte) {
	return func(t *testing.T, body []byte) {
		var resp struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Contains(t, resp.Error, substr)
	}
}
