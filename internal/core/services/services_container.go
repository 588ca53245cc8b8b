package services

import (
	portsrepo "github.com/TidonAM/ODET/internal/core/ports/repositories"
	portssvc "github.com/TidonAM/ODET/internal/core/ports/services"
	"github.com/TidonAM/ODET/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The dashboard owns the cached aggregation state; every mutation
	// service takes it as an invalidator, so it is built first.
	container.Dashboard = NewDashboardService(
		repos.AccountRepo,
		repos.TransactionRepo,
		repos.ResetRepo,
	)

	container.Account = NewAccountService(repos.AccountRepo, container.Dashboard)
	container.Category = NewCategoryService(repos.CategoryRepo, container.Dashboard)
	container.Period = NewPeriodService(repos.ResetRepo, container.Dashboard)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.Period, container.Dashboard)
	container.User = NewUserService(repos.UserRepo)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
