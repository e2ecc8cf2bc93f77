package handlers

import (
	"net/http"

	"medivision/internal/common"
	"medivision/internal/models"
	"medivision/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MasterHandlers handles customer, supplier and company master data
type MasterHandlers struct {
	customerRepo repositories.CustomerRepository
	supplierRepo repositories.SupplierRepository
	companyRepo  repositories.CompanyRepository
}

func NewMasterHandlers(customerRepo repositories.CustomerRepository,
	supplierRepo repositories.SupplierRepository,
	companyRepo repositories.CompanyRepository) *MasterHandlers {
	return &MasterHandlers{
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		companyRepo:  companyRepo,
	}
}

func (h *MasterHandlers) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	var customer models.Customer
	if err := c.Bind(&customer); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if customer.Code == "" || customer.Name == "" || customer.Mobile == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Code, name and mobile are required")
	}
	if customer.GSTIN != nil {
		if err := common.ValidateGSTIN(*customer.GSTIN, "gstin"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	customer.ID = uuid.New()

	if err := h.customerRepo.Create(ctx, &customer); err != nil {
		return httpError(err, "Failed to create customer")
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *MasterHandlers) ListCustomers(c echo.Context) error {
	customers, err := h.customerRepo.List(c.Request().Context())
	if err != nil {
		return httpError(err, "Failed to list customers")
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *MasterHandlers) SearchCustomers(c echo.Context) error {
	customers, err := h.customerRepo.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err, "Search failed")
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *MasterHandlers) DeleteCustomer(c echo.Context) error {
	if err := h.customerRepo.Delete(c.Request().Context(), c.Param("code")); err != nil {
		return httpError(err, "Failed to delete customer")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Customer deleted"})
}

func (h *MasterHandlers) CreateSupplier(c echo.Context) error {
	ctx := c.Request().Context()

	var supplier models.Supplier
	if err := c.Bind(&supplier); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if supplier.Code == "" || supplier.SupplierName == "" || supplier.Mobile == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Code, supplier name and mobile are required")
	}
	if supplier.GSTIN != nil {
		if err := common.ValidateGSTIN(*supplier.GSTIN, "gstin"); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	supplier.ID = uuid.New()

	if err := h.supplierRepo.Create(ctx, &supplier); err != nil {
		return httpError(err, "Failed to create supplier")
	}
	return c.JSON(http.StatusCreated, supplier)
}

func (h *MasterHandlers) ListSuppliers(c echo.Context) error {
	suppliers, err := h.supplierRepo.List(c.Request().Context())
	if err != nil {
		return httpError(err, "Failed to list suppliers")
	}
	return c.JSON(http.StatusOK, suppliers)
}

func (h *MasterHandlers) SearchSuppliers(c echo.Context) error {
	suppliers, err := h.supplierRepo.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err, "Search failed")
	}
	return c.JSON(http.StatusOK, suppliers)
}

func (h *MasterHandlers) DeleteSupplier(c echo.Context) error {
	if err := h.supplierRepo.Delete(c.Request().Context(), c.Param("code")); err != nil {
		return httpError(err, "Failed to delete supplier")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Supplier deleted"})
}

func (h *MasterHandlers) CreateCompany(c echo.Context) error {
	ctx := c.Request().Context()

	var company models.Company
	if err := c.Bind(&company); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if company.RegdCode == "" || company.Name == "" || company.Mobile == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Regd code, name and mobile are required")
	}
	company.ID = uuid.New()

	if err := h.companyRepo.Create(ctx, &company); err != nil {
		return httpError(err, "Failed to create company")
	}
	return c.JSON(http.StatusCreated, company)
}

func (h *MasterHandlers) ListCompanies(c echo.Context) error {
	companies, err := h.companyRepo.List(c.Request().Context())
	if err != nil {
		return httpError(err, "Failed to list companies")
	}
	return c.JSON(http.StatusOK, companies)
}

func (h *MasterHandlers) SearchCompanies(c echo.Context) error {
	companies, err := h.companyRepo.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err, "Search failed")
	}
	return c.JSON(http.StatusOK, companies)
}

func (h *MasterHandlers) DeleteCompany(c echo.Context) error {
	if err := h.companyRepo.Delete(c.Request().Context(), c.Param("code")); err != nil {
		return httpError(err, "Failed to delete company")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Company deleted"})
}
