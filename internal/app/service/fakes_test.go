package service

import (
	"context"
	"database/sql"
	"sort"

	"chef_bazaar/internal/common"
	"chef_bazaar/internal/domain/model"
)

// memTxRunner satisfies repository.TxRunner without a database. The fakes
// below apply writes immediately, so fn just runs with a nil handle.
type memTxRunner struct{}

func (memTxRunner) WithinTx(_ context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

type memUserRepo struct {
	users          map[string]*model.User
	seq            int64
	updateRoleErr  error
	nextChefSeqErr error
}

func newMemUserRepo(users ...*model.User) *memUserRepo {
	repo := &memUserRepo{users: make(map[string]*model.User)}
	for _, user := range users {
		repo.users[user.Email] = user
	}
	return repo
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := r.users[user.Email]; ok {
		return common.ErrConflict
	}
	r.users[user.Email] = user
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if user, ok := r.users[email]; ok {
		return user, nil
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *memUserRepo) CountUsers(_ context.Context) (int, error) {
	return len(r.users), nil
}

func (r *memUserRepo) UpdateStatus(_ context.Context, id, status string) error {
	for _, user := range r.users {
		if user.ID == id {
			user.Status = status
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *memUserRepo) UpdateRole(_ context.Context, _ *sql.Tx, email, role string, chefID *string) error {
	if r.updateRoleErr != nil {
		return r.updateRoleErr
	}
	user, ok := r.users[email]
	if !ok {
		return common.ErrNotFound
	}
	user.Role = role
	user.ChefID = chefID
	return nil
}

func (r *memUserRepo) NextChefSeq(_ context.Context, _ *sql.Tx) (int64, error) {
	if r.nextChefSeqErr != nil {
		return 0, r.nextChefSeqErr
	}
	r.seq++
	return r.seq, nil
}

type memMealRepo struct {
	meals map[string]*model.Meal
}

func newMemMealRepo(meals ...*model.Meal) *memMealRepo {
	repo := &memMealRepo{meals: make(map[string]*model.Meal)}
	for _, meal := range meals {
		repo.meals[meal.ID] = meal
	}
	return repo
}

func (r *memMealRepo) Create(_ context.Context, meal *model.Meal) error {
	r.meals[meal.ID] = meal
	return nil
}

func (r *memMealRepo) FindByID(_ context.Context, id string) (*model.Meal, error) {
	if meal, ok := r.meals[id]; ok {
		return meal, nil
	}
	return nil, common.ErrNotFound
}

func (r *memMealRepo) FindAll(_ context.Context) ([]model.Meal, error) {
	meals := make([]model.Meal, 0, len(r.meals))
	for _, meal := range r.meals {
		meals = append(meals, *meal)
	}
	return meals, nil
}

func (r *memMealRepo) FindByChefEmail(_ context.Context, email string) ([]model.Meal, error) {
	var meals []model.Meal
	for _, meal := range r.meals {
		if meal.ChefEmail == email {
			meals = append(meals, *meal)
		}
	}
	return meals, nil
}

func (r *memMealRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.meals[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.meals, id)
	return nil
}

type memOrderRepo struct {
	orders map[string]*model.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*model.Order)}
}

func (r *memOrderRepo) Create(_ context.Context, order *model.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *memOrderRepo) FindByUserEmail(_ context.Context, email string) ([]model.Order, error) {
	var orders []model.Order
	for _, order := range r.orders {
		if order.UserEmail == email {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *memOrderRepo) FindByChefID(_ context.Context, chefID string) ([]model.Order, error) {
	var orders []model.Order
	for _, order := range r.orders {
		if order.ChefID == chefID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (r *memOrderRepo) UpdateOrderStatus(_ context.Context, id, status string) error {
	order, ok := r.orders[id]
	if !ok {
		return common.ErrNotFound
	}
	order.OrderStatus = status
	return nil
}

func (r *memOrderRepo) MarkPaid(_ context.Context, id string) error {
	order, ok := r.orders[id]
	if !ok {
		return common.ErrNotFound
	}
	order.PaymentStatus = model.PaymentPaid
	return nil
}

func (r *memOrderRepo) CountOrders(_ context.Context) (int, error) {
	return len(r.orders), nil
}

func (r *memOrderRepo) CountOrdersByStatus(_ context.Context, status string) (int, error) {
	count := 0
	for _, order := range r.orders {
		if order.OrderStatus == status {
			count++
		}
	}
	return count, nil
}

type memFavoriteRepo struct {
	favorites map[string]*model.Favorite
}

func newMemFavoriteRepo() *memFavoriteRepo {
	return &memFavoriteRepo{favorites: make(map[string]*model.Favorite)}
}

func (r *memFavoriteRepo) Insert(_ context.Context, fav *model.Favorite) error {
	// Mirrors the (user_email, meal_id) unique index.
	for _, existing := range r.favorites {
		if existing.UserEmail == fav.UserEmail && existing.MealID == fav.MealID {
			return common.ErrConflict
		}
	}
	r.favorites[fav.ID] = fav
	return nil
}

func (r *memFavoriteRepo) Exists(_ context.Context, userEmail, mealID string) (bool, error) {
	for _, fav := range r.favorites {
		if fav.UserEmail == userEmail && fav.MealID == mealID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFavoriteRepo) FindByUserEmail(_ context.Context, email string) ([]model.Favorite, error) {
	var favorites []model.Favorite
	for _, fav := range r.favorites {
		if fav.UserEmail == email {
			favorites = append(favorites, *fav)
		}
	}
	return favorites, nil
}

func (r *memFavoriteRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.favorites[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.favorites, id)
	return nil
}

type memRequestRepo struct {
	requests map[string]*model.RoleRequest
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{requests: make(map[string]*model.RoleRequest)}
}

func (r *memRequestRepo) Insert(_ context.Context, req *model.RoleRequest) error {
	// Mirrors the partial unique index on (requester_email) WHERE pending.
	for _, existing := range r.requests {
		if existing.RequesterEmail == req.RequesterEmail && existing.RequestStatus == model.RequestPending {
			return common.ErrDuplicateRequest
		}
	}
	stored := *req
	r.requests[req.ID] = &stored
	return nil
}

func (r *memRequestRepo) FindByID(_ context.Context, id string) (*model.RoleRequest, error) {
	if req, ok := r.requests[id]; ok {
		return req, nil
	}
	return nil, common.ErrNotFound
}

func (r *memRequestRepo) ListAll(_ context.Context) ([]model.RoleRequest, error) {
	all := make([]model.RoleRequest, 0, len(r.requests))
	for _, req := range r.requests {
		all = append(all, *req)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].RequestTime.After(all[j].RequestTime)
	})
	return all, nil
}

func (r *memRequestRepo) Transition(_ context.Context, _ *sql.Tx, id, newStatus string) error {
	req, ok := r.requests[id]
	if !ok {
		return common.ErrNotFound
	}
	if req.RequestStatus != model.RequestPending {
		return common.ErrInvalidState
	}
	req.RequestStatus = newStatus
	return nil
}
