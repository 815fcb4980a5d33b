package cmd

import (
	"log/slog"

	"comanda/internal/adapters/out/cachesignal"
	"comanda/internal/adapters/out/postgres"
	"comanda/internal/core/application/usecases/commands"
	"comanda/internal/core/application/usecases/queries"
	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/core/ports"
	"comanda/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB           *gorm.DB
	uowFactory       postgres.GormUnitOfWorkFactory
	cacheInvalidator ports.CatalogCacheInvalidator
	sweepActorID     kernel.UUID
	logger           *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:           gormDB,
		uowFactory:       *postgres.NewGormUnitOfWorkFactory(gormDB),
		cacheInvalidator: cachesignal.NewSlogCatalogCacheInvalidator(logger),
		sweepActorID:     kernel.NewUUID(),
		logger:           logger,
	}
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.cacheInvalidator)
}

func (c *CompositionRoot) CreateOpenTableCommandHandler() commands.OpenTableCommandHandler {
	var f commands.OpenTableUoWFactory = FuncOpenTableUoWFactory(func() commands.OpenTableUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOpenTableCommandHandler(f)
}

func (c *CompositionRoot) CreateAddTableItemsCommandHandler() commands.AddTableItemsCommandHandler {
	var f commands.TableItemsUoWFactory = FuncTableItemsUoWFactory(func() commands.TableItemsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddTableItemsCommandHandler(f, c.cacheInvalidator)
}

func (c *CompositionRoot) CreateCloseTableCommandHandler() commands.CloseTableCommandHandler {
	var f commands.CloseTableUoWFactory = FuncCloseTableUoWFactory(func() commands.CloseTableUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCloseTableCommandHandler(f)
}

func (c *CompositionRoot) CreateTransferTableCommandHandler() commands.TransferTableCommandHandler {
	var f commands.TableOrderUoWFactory = FuncTableOrderUoWFactory(func() commands.TableOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransferTableCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderItemsCommandHandler() commands.UpdateOrderItemsCommandHandler {
	var f commands.OrderItemsUoWFactory = FuncOrderItemsUoWFactory(func() commands.OrderItemsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderItemsCommandHandler(f, c.cacheInvalidator)
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.CancelOrderUoWFactory = FuncCancelOrderUoWFactory(func() commands.CancelOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.cacheInvalidator)
}

func (c *CompositionRoot) CreateReleaseStaleTablesCommandHandler() commands.ReleaseStaleTablesCommandHandler {
	var f commands.TableOrderUoWFactory = FuncTableOrderUoWFactory(func() commands.TableOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseStaleTablesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTableBoardQueryHandler() queries.GetTableBoardQueryHandler {
	return queries.NewGetTableBoardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReleaseStaleTablesCommandHandler(), c.sweepActorID, c.logger)
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOpenTableUoWFactory func() commands.OpenTableUoW

func (f FuncOpenTableUoWFactory) Create() commands.OpenTableUoW {
	return f()
}

type FuncTableOrderUoWFactory func() commands.TableOrderUoW

func (f FuncTableOrderUoWFactory) Create() commands.TableOrderUoW {
	return f()
}

type FuncTableItemsUoWFactory func() commands.TableItemsUoW

func (f FuncTableItemsUoWFactory) Create() commands.TableItemsUoW {
	return f()
}

type FuncCloseTableUoWFactory func() commands.CloseTableUoW

func (f FuncCloseTableUoWFactory) Create() commands.CloseTableUoW {
	return f()
}

type FuncOrderItemsUoWFactory func() commands.OrderItemsUoW

func (f FuncOrderItemsUoWFactory) Create() commands.OrderItemsUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCancelOrderUoWFactory func() commands.CancelOrderUoW

func (f FuncCancelOrderUoWFactory) Create() commands.CancelOrderUoW {
	return f()
}
