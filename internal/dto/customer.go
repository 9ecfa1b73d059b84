package dto

import (
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a customer.
type CreateCustomerRequest struct {
	CustomerCode string `json:"customerCode"` // Optional, generated when empty
	FullName     string `json:"fullName" binding:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"omitempty,email"`
	Address      string `json:"address"`
	BranchID     string `json:"branchID"`
}

// UpdateCustomerRequest defines the fields allowed for updating a customer.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateCustomerRequest struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Address  *string `json:"address"`
	BranchID *string `json:"branchID"`
	IsActive *bool   `json:"isActive"`
}

// CustomerResponse defines the data returned for a customer, including the
// balance fields derived from the transaction history.
type CustomerResponse struct {
	CustomerID          string          `json:"customerID"`
	CustomerCode        string          `json:"customerCode"`
	FullName            string          `json:"fullName"`
	Phone               string          `json:"phone"`
	Email               string          `json:"email"`
	Address             string          `json:"address"`
	BranchID            string          `json:"branchID"`
	IsActive            bool            `json:"isActive"`
	TotalBalance        decimal.Decimal `json:"totalBalance"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
}

// ToCustomerResponse converts a domain.Customer to its DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:          c.CustomerID,
		CustomerCode:        c.CustomerCode,
		FullName:            c.FullName,
		Phone:               c.Phone,
		Email:               c.Email,
		Address:             c.Address,
		BranchID:            c.BranchID,
		IsActive:            c.IsActive,
		TotalBalance:        c.TotalBalance,
		LastTransactionDate: c.LastTransactionDate,
		CreatedAt:           c.CreatedAt,
		LastUpdatedAt:       c.LastUpdatedAt,
	}
}

// ToListCustomerResponse converts a slice of domain customers.
func ToListCustomerResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListCustomersResponse wraps the list of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
}
