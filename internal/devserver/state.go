package devserver

import (
	"errors"
	"sync"

	"tanimarket/internal/models"
)

var (
	errEmailTaken      = errors.New("email sudah terdaftar")
	errUserNotFound    = errors.New("user tidak ditemukan")
	errProductNotFound = errors.New("produk tidak ditemukan")
	errOrderNotFound   = errors.New("transaksi tidak ditemukan")
	errInsufficient    = errors.New("stok tidak mencukupi")
)

type account struct {
	models.User
	PasswordHash string
}

// State is the in-memory world of the development backend. It exists only
// for local development and tests of the client; nothing survives a
// restart.
type State struct {
	mu       sync.Mutex
	users    map[string]*account
	products []*models.Product
	orders   []*models.Order
	messages []models.Message
}

// NewState creates an empty backend state
func NewState() *State {
	return &State{users: make(map[string]*account)}
}

func (s *State) addUser(acc *account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == acc.Email {
			return errEmailTaken
		}
	}
	s.users[acc.ID] = acc
	return nil
}

func (s *State) userByEmail(email string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.users {
		if acc.Email == email {
			return acc, true
		}
	}
	return nil, false
}

func (s *State) userByID(id string) (*account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[id]
	return acc, ok
}

func (s *State) listUsers() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]models.User, 0, len(s.users))
	for _, acc := range s.users {
		users = append(users, acc.User)
	}
	return users
}

func (s *State) updateUser(id string, req *models.UserUpdateRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[id]
	if !ok {
		return nil, errUserNotFound
	}
	acc.Nama = req.Nama
	acc.Role = req.Role
	acc.Alamat = req.Alamat
	acc.NoHP = req.NoHP
	user := acc.User
	return &user, nil
}

func (s *State) deleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return errUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *State) addProduct(p *models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

func (s *State) listProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]models.Product, len(s.products))
	for i, p := range s.products {
		products[i] = *p
	}
	return products
}

func (s *State) productByID(id string) (*models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (s *State) updateProduct(id string, req *models.ProductCreateRequest) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			p.Nama = req.Nama
			p.Deskripsi = req.Deskripsi
			p.Harga = req.Harga
			p.Stok = req.Stok
			p.Satuan = req.Satuan
			p.ImageURL = req.ImageURL
			copied := *p
			return &copied, nil
		}
	}
	return nil, errProductNotFound
}

func (s *State) deleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return errProductNotFound
}

// placeOrder decrements stock for every line and stores the order, all
// under one lock so an oversell can never be half-applied
func (s *State) placeOrder(order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, detail := range order.Details {
		product := s.findProductLocked(detail.ProdukID)
		if product == nil {
			return errProductNotFound
		}
		if product.Stok < detail.Jumlah {
			return errInsufficient
		}
	}

	for _, detail := range order.Details {
		s.findProductLocked(detail.ProdukID).Stok -= detail.Jumlah
	}

	s.orders = append(s.orders, order)
	return nil
}

func (s *State) findProductLocked(id string) *models.Product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *State) ordersByUser(userID string) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out
}

// ordersByPetani returns orders containing at least one of the petani's
// products
func (s *State) ordersByPetani(petaniID string) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		for _, detail := range o.Details {
			product := s.findProductLocked(detail.ProdukID)
			if product != nil && product.PetaniID == petaniID {
				out = append(out, *o)
				break
			}
		}
	}
	return out
}

func (s *State) updateOrderStatus(id string, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			if !o.CanTransitionTo(status) {
				return nil, errors.New("perubahan status tidak diizinkan")
			}
			o.Status = status
			copied := *o
			return &copied, nil
		}
	}
	return nil, errOrderNotFound
}

func (s *State) addMessage(m models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
}

// conversation returns every message between the two users in send order
func (s *State) conversation(userA, userB string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Message
	for _, m := range s.messages {
		if (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, m)
		}
	}
	return out
}

func (s *State) markRead(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for i := range s.messages {
		if _, ok := wanted[s.messages[i].ID]; ok {
			s.messages[i].IsRead = true
		}
	}
}
