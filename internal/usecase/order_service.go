package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/orders_api/internal/domain"
	"github.com/Gunvolt24/orders_api/internal/ports"
	"github.com/Gunvolt24/orders_api/pkg/metrics"
)

// Проверка, что OrderService удовлетворяет интерфейсу ports.OrderService.
var _ ports.OrderService = (*OrderService)(nil)

// OrderService — движок жизненного цикла заказов (без знаний о транспорте).
// Владеет политикой переходов initiated -> sent -> (удаление) и её
// побочными эффектами: транзакционной записью и инвалидацией кэша.
type OrderService struct {
	repo      ports.OrderRepository // прямой доступ к хранилищу
	cache     ports.OrderCache      // прямой доступ к кэшу
	log       ports.Logger          // прямой доступ к логгеру
	validator ports.OrderValidator  // прямой доступ к валидатору
	cacheTTL  time.Duration         // TTL списка активных заказов
}

// NewOrderService — DI-конструктор.
func NewOrderService(
	repo ports.OrderRepository,
	cache ports.OrderCache,
	log ports.Logger,
	validator ports.OrderValidator,
	cacheTTL time.Duration,
) *OrderService {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &OrderService{
		repo:      repo,
		cache:     cache,
		log:       log,
		validator: validator,
		cacheTTL:  cacheTTL,
	}
}

// Create — создать заказ вместе с позициями в одной транзакции.
// Шаги:
//  1. доменная валидация входа (до открытия транзакции);
//  2. в транзакции: вставка заказа со статусом initiated, затем всех позиций;
//  3. повторное чтение из БД после коммита — вызывающий видит назначенные
//     БД поля (id, таймстемпы) ровно такими, какими они сохранены.
//
// Любой сбой внутри транзакции откатывает и заказ, и позиции; наружу уходит
// обобщённая ErrCreateFailed, детали остаются в логах.
func (s *OrderService) Create(ctx context.Context, clientName string, items []domain.NewOrderItem) (*domain.Order, error) {
	if err := s.validator.ValidateCreate(ctx, clientName, items); err != nil {
		s.log.Warnf(ctx, "create validation failed client=%q err=%v", clientName, err)
		return nil, err
	}

	var orderID int64
	err := s.repo.WithinTx(ctx, func(ctx context.Context, tx ports.OrderTx) error {
		order, err := tx.InsertOrder(ctx, clientName)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		orderID = order.ID
		if err := tx.InsertItems(ctx, order.ID, items); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Errorf(ctx, "create order failed client=%q err=%v", clientName, err)
		return nil, domain.ErrCreateFailed
	}

	created, err := s.repo.FindByID(ctx, orderID, true)
	if err != nil || created == nil {
		// Коммит прошёл, но перечитать не удалось — заказ существует,
		// а ответить вызывающему нечем.
		s.log.Errorf(ctx, "re-read after create failed id=%d err=%v", orderID, err)
		return nil, domain.ErrInternal
	}

	metrics.LifecycleTransitions.WithLabelValues("created").Inc()
	s.log.Infof(ctx, "order created id=%d client=%q items=%d", created.ID, clientName, len(created.Items))
	return created, nil
}

// GetOrder — заказ по id с позициями; (nil, nil), если записи нет.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		s.log.Errorf(ctx, "repo.FindByID failed id=%d err=%v", id, err)
		return nil, err
	}
	return order, nil
}

// ListActive — список активных заказов: сначала из кэша, при промахе —
// из БД с записью в кэш под фиксированным ключом и TTL.
func (s *OrderService) ListActive(ctx context.Context) ([]*domain.Order, error) {
	if orders, found := s.cache.Get(ctx, domain.ActiveOrdersCacheKey); found {
		s.log.Infof(ctx, "cache hit key=%s orders=%d", domain.ActiveOrdersCacheKey, len(orders))
		return orders, nil
	}
	s.log.Infof(ctx, "cache miss key=%s", domain.ActiveOrdersCacheKey)

	start := time.Now()
	orders, err := s.repo.FindAllActive(ctx)
	if err != nil {
		s.log.Errorf(ctx, "repo.FindAllActive failed err=%v", err)
		return nil, err
	}

	if setErr := s.cache.Set(ctx, domain.ActiveOrdersCacheKey, orders, s.cacheTTL); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed key=%s err=%v", domain.ActiveOrdersCacheKey, setErr)
	}

	s.log.Infof(ctx, "db fetch active orders=%d took=%s", len(orders), time.Since(start))
	return orders, nil
}

// AdvanceState — перевести заказ в следующее состояние.
// Решение принимается строго по статусу, прочитанному в начале транзакции
// под row-level блокировкой: параллельный вызов на том же id блокируется до
// коммита и видит уже новое состояние, никогда — старое.
//
// Таблица переходов:
//   - initiated -> sent: обновление статуса, возвращается обновлённый заказ;
//   - sent -> delivered: удаление строки (позиции — каскадно) и инвалидация
//     кэша активных заказов; возвращается подтверждение с id;
//   - delivered: защитная ветка — такой статус не должен встречаться в БД,
//     мутации нет, возвращается подтверждение;
//   - иное значение — фатальная несогласованность, ErrUnknownStatus.
func (s *OrderService) AdvanceState(ctx context.Context, id int64) (*domain.AdvanceResult, error) {
	var result *domain.AdvanceResult

	err := s.repo.WithinTx(ctx, func(ctx context.Context, tx ports.OrderTx) error {
		order, err := tx.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("select for update: %w", err)
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}

		switch order.Status {
		case domain.StatusInitiated:
			updated, err := tx.UpdateStatus(ctx, id, domain.StatusSent)
			if err != nil {
				return fmt.Errorf("update status: %w", err)
			}
			result = &domain.AdvanceResult{Order: updated}
			return nil

		case domain.StatusSent:
			if err := tx.Delete(ctx, id); err != nil {
				return fmt.Errorf("delete order: %w", err)
			}
			result = &domain.AdvanceResult{
				Message:   fmt.Sprintf("order %d marked as delivered and removed", id),
				ID:        id,
				Delivered: true,
			}
			return nil

		case domain.StatusDelivered:
			// Статус delivered в БД не сохраняется (доставка = удаление строки);
			// ветка отвечает на рассогласованное или тестовое состояние.
			s.log.Warnf(ctx, "order id=%d found in status=delivered, expected to be deleted", id)
			result = &domain.AdvanceResult{
				Message: fmt.Sprintf("order %d is already delivered", id),
				ID:      id,
			}
			return nil

		default:
			return fmt.Errorf("%w: %q (order id=%d)", domain.ErrUnknownStatus, order.Status, id)
		}
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) || errors.Is(err, domain.ErrUnknownStatus) {
			s.log.Warnf(ctx, "advance state id=%d err=%v", id, err)
			return nil, err
		}
		s.log.Errorf(ctx, "advance state failed id=%d err=%v", id, err)
		return nil, domain.ErrInternal
	}

	if result.Delivered {
		metrics.LifecycleTransitions.WithLabelValues("delivered").Inc()
		s.log.Infof(ctx, "order id=%d delivered and removed", id)
		// Удаление уже закоммичено — источник истины БД; сбой инвалидации
		// не отменяет переход, устаревшая запись умрёт по TTL.
		if err := s.cache.Delete(ctx, domain.ActiveOrdersCacheKey); err != nil {
			metrics.CacheOps.WithLabelValues("invalidate_failed").Inc()
			s.log.Errorf(ctx, "cache invalidation failed key=%s err=%v", domain.ActiveOrdersCacheKey, err)
		} else {
			metrics.CacheOps.WithLabelValues("invalidated").Inc()
			s.log.Infof(ctx, "cache key=%s invalidated", domain.ActiveOrdersCacheKey)
		}
	} else if result.Order != nil {
		metrics.LifecycleTransitions.WithLabelValues("sent").Inc()
		s.log.Infof(ctx, "order id=%d advanced to %s", id, result.Order.Status)
	}

	return result, nil
}
