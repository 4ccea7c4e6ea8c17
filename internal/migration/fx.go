package migration

import (
	authdomain "github.com/smallbiznis/invoys/internal/auth/domain"
	businessdomain "github.com/smallbiznis/invoys/internal/business/domain"
	clientdomain "github.com/smallbiznis/invoys/internal/client/domain"
	"github.com/smallbiznis/invoys/internal/config"
	invoicedomain "github.com/smallbiznis/invoys/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/invoys/internal/payment/domain"
	portaldomain "github.com/smallbiznis/invoys/internal/portal/domain"
	"github.com/smallbiznis/invoys/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite installs build the schema from the models.
			err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Profile{},
				&authdomain.Session{},
				&businessdomain.Business{},
				&businessdomain.BusinessUser{},
				&clientdomain.Client{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceItem{},
				&invoicedomain.InvoiceSequence{},
				&paymentdomain.Payment{},
				&portaldomain.ClientPortalAccess{},
			)
			if err != nil {
				return err
			}
		}

		if cfg.BootstrapDefaultBusiness {
			return seed.EnsureDefaultBusinessAndAdmin(conn)
		}
		return nil
	}),
)
