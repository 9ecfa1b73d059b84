package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/congnodev/cashflow_mgmt_app/internal/core/domain"
	portsrepo "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/congnodev/cashflow_mgmt_app/internal/core/ports/services"
	"github.com/congnodev/cashflow_mgmt_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const seedUserID = "SYSTEM_SEED"

// seedMonths is how far back the generated history reaches. Long enough that
// every dashboard range has data on first load.
const seedMonths = 15

var seedBranchNames = []string{
	"Chi nhánh Hà Nội",
	"Chi nhánh Hồ Chí Minh",
	"Chi nhánh Đà Nẵng",
}

var seedBankNames = []string{
	"Vietcombank", "Techcombank", "BIDV", "ACB", "MB Bank",
}

var seedFirstNames = []string{
	"Nguyễn Văn", "Trần Thị", "Lê Minh", "Phạm Quốc", "Hoàng Thu",
	"Vũ Đức", "Đặng Ngọc", "Bùi Thanh", "Đỗ Hải", "Hồ Xuân",
}

var seedLastNames = []string{
	"An", "Bình", "Cường", "Dung", "Em", "Giang", "Hà", "Khoa",
	"Lan", "Minh", "Nam", "Oanh", "Phúc", "Quỳnh", "Sơn", "Tú",
}

var seedProductNames = []string{
	"Gạch ốp lát 60x60", "Xi măng PCB40", "Thép cuộn D8", "Sơn nội thất 18L",
	"Ống nhựa PVC D90", "Cát xây dựng", "Đá 1x2", "Tôn lạnh mạ màu",
	"Keo dán gạch", "Thạch cao khung xương", "Dây điện 2x2.5", "Bột trét tường",
}

var seedCategories = []string{"Vật liệu thô", "Hoàn thiện", "Điện nước"}

// seedServiceImpl generates deterministic fixture data so the dashboard has
// something to show before any real records exist.
type seedServiceImpl struct {
	BaseService
	repos *portsrepo.RepositoryProvider
	seed  int64
}

// NewSeedServiceImpl creates a new seed service. The same seed always
// produces the same fixture set.
func NewSeedServiceImpl(repos *portsrepo.RepositoryProvider, seed int64) portssvc.SeedSvcFacade {
	return &seedServiceImpl{repos: repos, seed: seed}
}

var _ portssvc.SeedSvcFacade = (*seedServiceImpl)(nil)

func (s *seedServiceImpl) SeedIfEmpty(ctx context.Context) (bool, error) {
	count, err := s.repos.Transaction.CountTransactions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count transactions before seeding")
		return false, fmt.Errorf("failed to count transactions: %w", err)
	}
	if count > 0 {
		s.LogDebug(ctx, "Store already has transactions, skipping seed",
			slog.Int64("transaction_count", count))
		return false, nil
	}

	rng := utils.NewRandom(s.seed)
	now := time.Now()

	branches, err := s.seedBranches(ctx, now)
	if err != nil {
		return false, err
	}
	accounts, err := s.seedBankAccounts(ctx, rng, branches, now)
	if err != nil {
		return false, err
	}
	customers, err := s.seedCustomers(ctx, rng, branches, now)
	if err != nil {
		return false, err
	}
	if err := s.seedProducts(ctx, rng, now); err != nil {
		return false, err
	}

	txns := s.generateTransactions(rng, customers, accounts, now)
	if err := s.repos.Transaction.SaveTransactions(ctx, txns); err != nil {
		s.LogError(ctx, err, "Failed to save seed transactions")
		return false, fmt.Errorf("failed to save seed transactions: %w", err)
	}

	s.LogInfo(ctx, "Seeded fixture data",
		slog.Int("branches", len(branches)),
		slog.Int("bank_accounts", len(accounts)),
		slog.Int("customers", len(customers)),
		slog.Int("transactions", len(txns)))
	return true, nil
}

func (s *seedServiceImpl) seedBranches(ctx context.Context, now time.Time) ([]domain.Branch, error) {
	branches := make([]domain.Branch, len(seedBranchNames))
	for i, name := range seedBranchNames {
		branches[i] = domain.Branch{
			BranchID: uuid.NewString(),
			Name:     name,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     seedUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: seedUserID,
			},
		}
		if err := s.repos.Branch.SaveBranch(ctx, branches[i]); err != nil {
			return nil, fmt.Errorf("failed to save seed branch: %w", err)
		}
	}
	return branches, nil
}

func (s *seedServiceImpl) seedBankAccounts(ctx context.Context, rng *utils.Random, branches []domain.Branch, now time.Time) ([]domain.BankAccount, error) {
	accounts := make([]domain.BankAccount, 0, 4)
	for i := 0; i < 4; i++ {
		bank := seedBankNames[i%len(seedBankNames)]
		account := domain.BankAccount{
			BankAccountID: uuid.NewString(),
			AccountName:   fmt.Sprintf("TK %s %d", bank, i+1),
			AccountNumber: rng.NumericString(12),
			BankName:      bank,
			BranchID:      branches[i%len(branches)].BranchID,
			IsActive:      true,
			Balance:       decimal.Zero,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     seedUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: seedUserID,
			},
		}
		if err := s.repos.BankAccount.SaveBankAccount(ctx, account); err != nil {
			return nil, fmt.Errorf("failed to save seed bank account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (s *seedServiceImpl) seedCustomers(ctx context.Context, rng *utils.Random, branches []domain.Branch, now time.Time) ([]domain.Customer, error) {
	customers := make([]domain.Customer, 0, 24)
	for i := 0; i < 24; i++ {
		name := rng.PickString(seedFirstNames) + " " + rng.PickString(seedLastNames)
		customer := domain.Customer{
			CustomerID:   uuid.NewString(),
			CustomerCode: fmt.Sprintf("KH-%04d", i+1),
			FullName:     name,
			Phone:        "09" + rng.NumericString(8),
			Address:      fmt.Sprintf("Số %d đường Lê Lợi", rng.IntRange(1, 200)),
			BranchID:     branches[rng.IntN(len(branches))].BranchID,
			IsActive:     true,
			TotalBalance: decimal.Zero,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     seedUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: seedUserID,
			},
		}
		if err := s.repos.Customer.SaveCustomer(ctx, customer); err != nil {
			return nil, fmt.Errorf("failed to save seed customer: %w", err)
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

func (s *seedServiceImpl) seedProducts(ctx context.Context, rng *utils.Random, now time.Time) error {
	for i, name := range seedProductNames {
		price := decimal.NewFromInt(rng.Int64Range(50, 2000) * 1000)
		product := domain.Product{
			ProductID:     uuid.NewString(),
			SKU:           fmt.Sprintf("SP-%04d", i+1),
			Name:          name,
			Category:      seedCategories[i%len(seedCategories)],
			Unit:          "cái",
			Price:         price,
			CostPrice:     price.Mul(decimal.NewFromFloat(0.8)).Round(0),
			StockQuantity: int64(rng.IntRange(0, 500)),
			ReorderLevel:  int64(rng.IntRange(10, 50)),
			IsActive:      true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     seedUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: seedUserID,
			},
		}
		if err := s.repos.Product.SaveProduct(ctx, product); err != nil {
			return fmt.Errorf("failed to save seed product: %w", err)
		}
	}
	return nil
}

// generateTransactions spreads a plausible charge/payment mix per customer
// over the seeded history window.
func (s *seedServiceImpl) generateTransactions(rng *utils.Random, customers []domain.Customer, accounts []domain.BankAccount, now time.Time) []domain.Transaction {
	start := now.AddDate(0, -seedMonths, 0)
	var txns []domain.Transaction

	for _, customer := range customers {
		count := rng.IntRange(8, 30)
		for i := 0; i < count; i++ {
			date := rng.Date(start, now)
			amount := decimal.NewFromInt(rng.Int64Range(100, 5000) * 1000)

			var txnType domain.TransactionType
			switch {
			case rng.Probability(0.45):
				txnType = domain.Charge
			case rng.Probability(0.85):
				txnType = domain.Payment
			case rng.Probability(0.5):
				txnType = domain.Refund
			default:
				txnType = domain.Adjustment
				if rng.Probability(0.5) {
					amount = amount.Neg()
				}
			}

			txn := domain.Transaction{
				TransactionID:   uuid.NewString(),
				Code:            fmt.Sprintf("TXN-%06d", len(txns)+1),
				CustomerID:      customer.CustomerID,
				BranchID:        customer.BranchID,
				TransactionType: txnType,
				Amount:          amount,
				TransactionDate: date,
				Description:     "Giao dịch khởi tạo",
				AuditFields: domain.AuditFields{
					CreatedAt:     date,
					CreatedBy:     seedUserID,
					LastUpdatedAt: date,
					LastUpdatedBy: seedUserID,
				},
			}
			// Charges never touch cash, so only the cash-effecting types get
			// a bank account.
			if txnType != domain.Charge {
				txn.BankAccountID = accounts[rng.IntN(len(accounts))].BankAccountID
			}
			txns = append(txns, txn)
		}
	}
	return txns
}
