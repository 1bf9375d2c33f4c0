package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/storebase/storefront/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock Repo ---

type MockProductRepo struct {
	SourceProducts []models.Product
	Err            error

	// Fields to capture call arguments
	lastCalledOffset  int
	lastCalledLimit   int
	lastCalledFilters models.ProductFilters
	lastCalledID      uint
	lastCreated       *models.Product
	lastUpdate        models.ProductUpdate
	lastDeletedID     uint
}

func (m *MockProductRepo) GetAllProducts() ([]models.Product, error) {
	return m.SourceProducts, m.Err
}

func (m *MockProductRepo) GetFilteredProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error) {
	m.lastCalledOffset = offset
	m.lastCalledLimit = limit
	m.lastCalledFilters = filters

	if m.Err != nil {
		return nil, 0, m.Err
	}

	// Simulate filtering
	var filteredProducts []models.Product
	for _, p := range m.SourceProducts {
		match := true
		if filters.CategoryID != 0 && p.CategoryID != filters.CategoryID {
			match = false
		}
		if filters.PriceLessThan != nil && p.Price.InexactFloat64() >= *filters.PriceLessThan {
			match = false
		}
		if match {
			filteredProducts = append(filteredProducts, p)
		}
	}

	total := int64(len(filteredProducts))

	// Simulate pagination
	start := offset
	if start > len(filteredProducts) {
		start = len(filteredProducts)
	}
	end := offset + limit
	if end > len(filteredProducts) {
		end = len(filteredProducts)
	}

	return filteredProducts[start:end], total, nil
}

func (m *MockProductRepo) GetByID(id uint) (*models.Product, error) {
	m.lastCalledID = id

	if m.Err != nil {
		return nil, m.Err
	}

	for _, p := range m.SourceProducts {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, models.ErrProductNotFound
}

func (m *MockProductRepo) CreateProduct(product *models.Product) (*models.Product, error) {
	m.lastCreated = product
	if m.Err != nil {
		return nil, m.Err
	}
	created := *product
	created.ID = uint(len(m.SourceProducts) + 1)
	return &created, nil
}

func (m *MockProductRepo) UpdateProduct(id uint, update models.ProductUpdate) (*models.Product, error) {
	m.lastCalledID = id
	m.lastUpdate = update
	if m.Err != nil {
		return nil, m.Err
	}
	current, err := m.GetByID(id)
	if err != nil {
		return nil, err
	}
	if update.Name != nil {
		current.Name = *update.Name
	}
	if update.Price != nil {
		current.Price = *update.Price
	}
	if update.Stock != nil {
		current.Stock = *update.Stock
	}
	return current, nil
}

func (m *MockProductRepo) DeleteProduct(id uint) (bool, error) {
	m.lastDeletedID = id
	if m.Err != nil {
		return false, m.Err
	}
	for _, p := range m.SourceProducts {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// --- Helpers ---

func newTestProduct(id uint, name string, categoryID uint, categoryName string, price float64, stock int) models.Product {
	return models.Product{
		ID:         id,
		Name:       name,
		Price:      decimal.NewFromFloat(price),
		Stock:      stock,
		CategoryID: categoryID,
		Category: models.Category{
			ID:   categoryID,
			Name: categoryName,
		},
	}
}

func serveCatalog(repo *MockProductRepo, method, url string) *httptest.ResponseRecorder {
	handler := NewCatalogHandler(repo)
	router := gin.New()
	router.GET("/catalog", handler.HandleGet)
	router.GET("/catalog/:id", handler.HandleGetProduct)

	req := httptest.NewRequest(method, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestHandleGet(t *testing.T) {
	allMockProducts := []models.Product{
		newTestProduct(1, "Running Shoes", 1, "Shoes", 19.99, 10),
		newTestProduct(2, "Winter Jacket", 2, "Clothing", 24.99, 5),
		newTestProduct(3, "Sun Hat", 3, "Accessories", 10.00, 7),
		newTestProduct(4, "Wool Coat", 2, "Clothing", 95.50, 2),
	}

	testCases := []struct {
		name               string
		url                string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCalls     func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name: "Success with default pagination",
			url:  "/catalog",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{
					SourceProducts: allMockProducts,
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 4, resp.Total)
				assert.Len(t, resp.Products, 4)
				assert.Equal(t, "Running Shoes", resp.Products[0].Name)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 0, repo.lastCalledOffset, "Expected default offset 0")
				assert.Equal(t, 10, repo.lastCalledLimit, "Expected default limit 10")
				assert.Zero(t, repo.lastCalledFilters.CategoryID)
				assert.Nil(t, repo.lastCalledFilters.PriceLessThan)
			},
		},
		{
			name: "Success with custom pagination",
			url:  "/catalog?offset=1&limit=2",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 4, resp.Total)
				assert.Len(t, resp.Products, 2)
				assert.Equal(t, "Winter Jacket", resp.Products[0].Name)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 1, repo.lastCalledOffset)
				assert.Equal(t, 2, repo.lastCalledLimit)
			},
		},
		{
			name: "Pagination with out-of-bounds values",
			url:  "/catalog?offset=-10&limit=200",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 0, repo.lastCalledOffset, "Offset should be clamped to 0")
				assert.Equal(t, 100, repo.lastCalledLimit, "Limit should be clamped to 100")
			},
		},
		{
			name: "Pagination with lower bound limit",
			url:  "/catalog?limit=0",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 1, repo.lastCalledLimit, "Limit should be clamped to 1")
			},
		},
		{
			name: "Filter by category and check response",
			url:  "/catalog?category=2",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{
					SourceProducts: allMockProducts,
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 2, resp.Total)
				assert.Len(t, resp.Products, 2)
				assert.Equal(t, "Winter Jacket", resp.Products[0].Name)
				assert.Equal(t, "Wool Coat", resp.Products[1].Name)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, uint(2), repo.lastCalledFilters.CategoryID)
				assert.Nil(t, repo.lastCalledFilters.PriceLessThan)
			},
		},
		{
			name: "Filter by price less than",
			url:  "/catalog?price_lt=20",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 2, resp.Total)
				assert.Len(t, resp.Products, 2)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.NotNil(t, repo.lastCalledFilters.PriceLessThan)
				assert.Equal(t, 20.0, *repo.lastCalledFilters.PriceLessThan)
				assert.Zero(t, repo.lastCalledFilters.CategoryID)
			},
		},
		{
			name: "Substring search is passed through",
			url:  "/catalog?q=jacket",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, "jacket", repo.lastCalledFilters.Search)
			},
		},
		{
			name: "Combined filters",
			url:  "/catalog?category=2&price_lt=30",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 1, resp.Total)
				assert.Len(t, resp.Products, 1)
				assert.Equal(t, "Winter Jacket", resp.Products[0].Name)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, uint(2), repo.lastCalledFilters.CategoryID)
				assert.NotNil(t, repo.lastCalledFilters.PriceLessThan)
				assert.Equal(t, 30.0, *repo.lastCalledFilters.PriceLessThan)
			},
		},
		{
			name: "Empty result from repo",
			url:  "/catalog?category=99",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 0, resp.Total)
				assert.Len(t, resp.Products, 0)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, uint(99), repo.lastCalledFilters.CategoryID)
			},
		},
		{
			name: "Repository error",
			url:  "/catalog",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "failed to retrieve products", errResp["error"])
			},
		},
		{
			name: "Invalid query param values are ignored",
			url:  "/catalog?offset=abc&limit=xyz&price_lt=def&category=ghi",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: allMockProducts}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp Response
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 4, resp.Total)
				assert.Len(t, resp.Products, 4)
			},
			checkRepoCalls: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, 0, repo.lastCalledOffset, "Expected default offset for invalid value")
				assert.Equal(t, 10, repo.lastCalledLimit, "Expected default limit for invalid value")
				assert.Nil(t, repo.lastCalledFilters.PriceLessThan, "Expected nil price filter for invalid value")
				assert.Zero(t, repo.lastCalledFilters.CategoryID, "Expected zero category filter for invalid value")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()

			// Act
			rec := serveCatalog(mockRepo, "GET", tc.url)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkRepoCalls != nil {
				tc.checkRepoCalls(t, mockRepo)
			}
		})
	}
}
