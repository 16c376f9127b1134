package memory

import "github.com/vladislavdragonenkov/shopcrm/internal/domain"

type productRepository struct {
	store *Store
}

// Create сохраняет товар, присваивая следующий идентификатор.
func (r *productRepository) Create(product domain.Product) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextProductID++
	product.ID = s.nextProductID
	s.products = append(s.products, product)
	return product.ID, nil
}

// List возвращает копию каталога в порядке создания.
func (r *productRepository) List() ([]domain.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Product, len(s.products))
	copy(result, s.products)
	return result, nil
}

// IDByName разрешает товар по наименованию; при дублях побеждает первый созданный.
func (r *productRepository) IDByName(name string) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, product := range s.products {
		if product.Name == name {
			return product.ID, nil
		}
	}
	return 0, domain.ErrProductNotFound
}

var _ domain.ProductRepository = (*productRepository)(nil)
