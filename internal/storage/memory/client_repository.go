package memory

import "github.com/vladislavdragonenkov/shopcrm/internal/domain"

type clientRepository struct {
	store *Store
}

// Create сохраняет клиента, присваивая следующий идентификатор.
func (r *clientRepository) Create(client domain.Client) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextClientID++
	client.ID = s.nextClientID
	s.clients = append(s.clients, client)
	return client.ID, nil
}

// List возвращает копию списка клиентов в порядке создания.
func (r *clientRepository) List() ([]domain.Client, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Client, len(s.clients))
	copy(result, s.clients)
	return result, nil
}

// IDByName разрешает клиента по ФИО; при дублях побеждает первый созданный.
func (r *clientRepository) IDByName(fio string) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, client := range s.clients {
		if client.FIO == fio {
			return client.ID, nil
		}
	}
	return 0, domain.ErrClientNotFound
}

var _ domain.ClientRepository = (*clientRepository)(nil)
