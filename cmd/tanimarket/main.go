package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"tanimarket/internal/api"
	"tanimarket/internal/config"
	"tanimarket/internal/models"
	"tanimarket/internal/services"
	"tanimarket/internal/session"
	"tanimarket/internal/store"
)

// app wires the session, the API client and the services behind the
// terminal menus.
type app struct {
	in       *bufio.Scanner
	session  *session.Manager
	cart     *services.CartService
	checkout *services.CheckoutService
	catalog  *services.CatalogService
	orders   *services.OrderService
	users    *services.UserService
	client   *api.Client
	chat     *config.ChatConfig
}

func main() {
	// Prices go over the wire as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Open the local store
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatal("Failed to open local store:", err)
	}
	defer st.Close()

	// Restore the session and build the API client around it
	sess, err := session.NewManager(st)
	if err != nil {
		log.Fatal("Failed to restore session:", err)
	}
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, sess)
	client.SetUnauthorizedHook(func() {
		sess.Expire()
		fmt.Println("Sesi berakhir, silakan login kembali.")
	})

	cart, err := services.NewCartService(st)
	if err != nil {
		log.Fatal("Failed to restore cart:", err)
	}

	a := &app{
		in:       bufio.NewScanner(os.Stdin),
		session:  sess,
		cart:     cart,
		checkout: services.NewCheckoutService(cart, client),
		catalog:  services.NewCatalogService(client),
		orders:   services.NewOrderService(client),
		users:    services.NewUserService(client, sess),
		client:   client,
		chat:     &cfg.Chat,
	}
	a.run()
}

func (a *app) run() {
	fmt.Println("=== TaniMarket ===")
	for {
		user := a.session.Current()
		if user == nil {
			if !a.loginMenu() {
				return
			}
			continue
		}

		// Route to the home screen of the logged-in role
		switch session.RoleHome(user.Role) {
		case session.RouteAdminHome:
			if !a.adminMenu(user) {
				return
			}
		case session.RoutePetaniHome:
			if !a.petaniMenu(user) {
				return
			}
		default:
			if !a.pembeliMenu(user) {
				return
			}
		}
	}
}

// prompt reads one trimmed line, returning false on EOF
func (a *app) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *app) promptInt(label string) (int, bool) {
	raw, ok := a.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Println("Masukan harus berupa angka.")
		return 0, false
	}
	return n, true
}

func (a *app) loginMenu() bool {
	fmt.Println("\n1. Login")
	fmt.Println("2. Daftar")
	fmt.Println("0. Keluar")
	choice, ok := a.prompt("> ")
	if !ok || choice == "0" {
		return false
	}

	ctx := context.Background()
	switch choice {
	case "1":
		email, ok := a.prompt("Email: ")
		if !ok {
			return false
		}
		password, ok := a.prompt("Password: ")
		if !ok {
			return false
		}
		user, err := a.users.Login(ctx, email, password)
		if err != nil {
			fmt.Println("Login gagal:", err)
			return true
		}
		fmt.Printf("Selamat datang, %s (%s)\n", user.Nama, user.Role.DisplayName())
	case "2":
		a.registerFlow(ctx)
	}
	return true
}

func (a *app) registerFlow(ctx context.Context) {
	req := &models.RegisterRequest{}
	var ok bool
	if req.Nama, ok = a.prompt("Nama: "); !ok {
		return
	}
	if req.Email, ok = a.prompt("Email: "); !ok {
		return
	}
	if req.Password, ok = a.prompt("Password: "); !ok {
		return
	}
	role, ok := a.prompt("Daftar sebagai (petani/pembeli): ")
	if !ok {
		return
	}
	req.Role = models.Role(strings.ToUpper(role))
	if req.Alamat, ok = a.prompt("Alamat: "); !ok {
		return
	}
	if req.NoHP, ok = a.prompt("No. HP: "); !ok {
		return
	}

	if _, err := a.users.Register(ctx, req); err != nil {
		fmt.Println("Pendaftaran gagal:", err)
		return
	}
	fmt.Println("Pendaftaran berhasil, silakan login.")
}

func (a *app) logout() {
	if err := a.session.Logout(); err != nil {
		fmt.Println("Gagal logout:", err)
	}
}

// guard enforces the role requirement of a menu action. Menus are
// already role-routed, but the session can expire between renders.
func (a *app) guard(required ...models.Role) bool {
	d := session.Authorize(a.session.Current(), required...)
	if !d.Allowed {
		fmt.Println("Akses ditolak.")
	}
	return d.Allowed
}

func (a *app) pembeliMenu(user *models.User) bool {
	fmt.Printf("\n--- Pembeli: %s ---\n", user.Nama)
	fmt.Println("1. Lihat produk")
	fmt.Println("2. Keranjang")
	fmt.Println("3. Checkout")
	fmt.Println("4. Riwayat transaksi")
	fmt.Println("5. Chat")
	fmt.Println("6. Logout")
	fmt.Println("0. Keluar")
	choice, ok := a.prompt("> ")
	if !ok || choice == "0" {
		return false
	}

	ctx := context.Background()
	switch choice {
	case "1":
		a.browseCatalog(ctx)
	case "2":
		a.cartView()
	case "3":
		if a.guard(models.RolePembeli) {
			a.checkoutFlow(ctx, user)
		}
	case "4":
		a.printOrders(a.orders.History(ctx, user.ID))
	case "5":
		a.chatView(ctx, user)
	case "6":
		a.logout()
	}
	return true
}

func (a *app) browseCatalog(ctx context.Context) {
	products, err := a.catalog.Browse(ctx)
	if err != nil {
		fmt.Println("Gagal memuat produk:", err)
		return
	}
	if len(products) == 0 {
		fmt.Println("Belum ada produk.")
		return
	}
	for i, p := range products {
		fmt.Printf("%d. %s - Rp%s per %s (stok %d)\n", i+1, p.Nama, p.Harga.StringFixed(0), p.Satuan, p.Stok)
	}

	idx, ok := a.promptInt("Tambah ke keranjang (nomor, 0 batal): ")
	if !ok || idx < 1 || idx > len(products) {
		return
	}
	qty, ok := a.promptInt("Jumlah: ")
	if !ok {
		return
	}
	if err := a.cart.Add(&products[idx-1], qty); err != nil {
		fmt.Println("Gagal menambah ke keranjang:", err)
		return
	}
	fmt.Println("Ditambahkan ke keranjang.")
}

func (a *app) cartView() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Keranjang kosong.")
		return
	}
	for i, item := range items {
		fmt.Printf("%d. %s x%d @ Rp%s = Rp%s\n",
			i+1, item.ProductName, item.Quantity,
			item.UnitPrice.StringFixed(0), item.Subtotal().StringFixed(0))
	}
	fmt.Printf("Subtotal: Rp%s\n", a.cart.Subtotal().StringFixed(0))

	fmt.Println("u. Ubah jumlah  h. Hapus item  k. Kosongkan  (enter kembali)")
	choice, ok := a.prompt("> ")
	if !ok {
		return
	}
	switch choice {
	case "u":
		idx, ok := a.promptInt("Nomor item: ")
		if !ok {
			return
		}
		qty, ok := a.promptInt("Jumlah baru: ")
		if !ok {
			return
		}
		if err := a.cart.SetQuantity(idx-1, qty); err != nil {
			fmt.Println("Gagal mengubah jumlah:", err)
		}
	case "h":
		idx, ok := a.promptInt("Nomor item: ")
		if !ok {
			return
		}
		if err := a.cart.Remove(idx - 1); err != nil {
			fmt.Println("Gagal menghapus item:", err)
		}
	case "k":
		if err := a.cart.Clear(); err != nil {
			fmt.Println("Gagal mengosongkan keranjang:", err)
		}
	}
}

func (a *app) checkoutFlow(ctx context.Context, user *models.User) {
	if a.cart.Len() == 0 {
		fmt.Println("Keranjang kosong.")
		return
	}

	fmt.Println("Metode pembayaran: 1. Transfer bank  2. E-wallet  3. COD  4. Kartu kredit")
	methods := []models.PaymentMethod{
		models.PaymentBankTransfer,
		models.PaymentEWallet,
		models.PaymentCashOnDelivery,
		models.PaymentCreditCard,
	}
	m, ok := a.promptInt("> ")
	if !ok || m < 1 || m > len(methods) {
		return
	}

	fmt.Println("Pengiriman: 1. Regular (Rp15.000)  2. Express (Rp30.000)  3. Same day (Rp50.000)  4. Ambil sendiri")
	options := []models.ShippingOption{
		models.ShippingRegular,
		models.ShippingExpress,
		models.ShippingSameDay,
		models.ShippingPickup,
	}
	o, ok := a.promptInt("> ")
	if !ok || o < 1 || o > len(options) {
		return
	}

	sub := services.PaymentSubmission{Method: methods[m-1], Shipping: options[o-1]}
	fmt.Printf("Total: Rp%s\n", a.checkout.Total(sub.Shipping).StringFixed(0))

	raw, ok := a.prompt("Jumlah dibayar: ")
	if !ok {
		return
	}
	tendered, err := decimal.NewFromString(raw)
	if err != nil {
		fmt.Println("Jumlah tidak valid.")
		return
	}
	sub.Tendered = tendered

	result, err := a.checkout.Submit(ctx, user, sub)
	if err != nil {
		var short *services.ShortfallError
		if errors.As(err, &short) {
			fmt.Printf("Pembayaran kurang Rp%s.\n", short.Shortfall.StringFixed(0))
			return
		}
		fmt.Println("Checkout gagal:", err)
		return
	}
	fmt.Printf("Pesanan %s dibuat. Kembalian: Rp%s\n", result.Order.ID, result.Change.StringFixed(0))
}

func (a *app) printOrders(orders []models.Order, err error) {
	if err != nil {
		fmt.Println("Gagal memuat transaksi:", err)
		return
	}
	if len(orders) == 0 {
		fmt.Println("Belum ada transaksi.")
		return
	}
	for _, o := range orders {
		fmt.Printf("%s  %s  Rp%s  %s\n",
			o.ID, o.Tanggal.Format("2006-01-02"),
			o.Total.StringFixed(0), o.StatusDisplayName())
	}
}

func (a *app) chatView(ctx context.Context, user *models.User) {
	// Reuse the remembered peer when there is one
	peer, err := a.session.ChatPeer()
	if err != nil {
		fmt.Println("Gagal memuat lawan bicara:", err)
	}
	if peer == nil {
		id, ok := a.prompt("ID lawan bicara: ")
		if !ok || id == "" {
			return
		}
		peer = &models.User{ID: id}
		if err := a.session.SetChatPeer(peer); err != nil {
			fmt.Println("Gagal menyimpan lawan bicara:", err)
		}
	} else {
		fmt.Printf("Melanjutkan percakapan dengan %s\n", peer.ID)
	}

	chat := services.NewChatService(a.client, user.ID, a.chat.PollInterval)
	conv, err := chat.Open(ctx, peer.ID)
	if err != nil {
		fmt.Println("Gagal membuka percakapan:", err)
		return
	}
	stop := conv.StartPolling(ctx)
	defer stop()

	for _, msg := range conv.Messages() {
		printMessage(user.ID, msg)
	}
	fmt.Println("Ketik pesan, /baru untuk pesan masuk, /ganti untuk ganti lawan bicara, /keluar untuk kembali.")
	for {
		line, ok := a.prompt("")
		if !ok || line == "/keluar" {
			return
		}
		switch line {
		case "":
			continue
		case "/baru":
			for _, msg := range conv.Messages() {
				printMessage(user.ID, msg)
			}
		case "/ganti":
			if err := a.session.SetChatPeer(nil); err != nil {
				fmt.Println("Gagal mengganti lawan bicara:", err)
			}
			return
		default:
			if _, err := conv.Send(ctx, line); err != nil {
				fmt.Println("Gagal mengirim pesan:", err)
			}
		}
	}
}

func printMessage(selfID string, msg models.Message) {
	who := "Mereka"
	if msg.SenderID == selfID {
		who = "Anda"
	}
	fmt.Printf("[%s] %s: %s\n", msg.CreatedAt.Format("15:04"), who, msg.Body)
}

func (a *app) petaniMenu(user *models.User) bool {
	fmt.Printf("\n--- Petani: %s ---\n", user.Nama)
	fmt.Println("1. Produk saya")
	fmt.Println("2. Tambah produk")
	fmt.Println("3. Pesanan masuk")
	fmt.Println("4. Chat")
	fmt.Println("5. Logout")
	fmt.Println("0. Keluar")
	choice, ok := a.prompt("> ")
	if !ok || choice == "0" {
		return false
	}

	ctx := context.Background()
	switch choice {
	case "1":
		if a.guard(models.RolePetani, models.RoleAdmin) {
			a.myProductsView(ctx, user)
		}
	case "2":
		if a.guard(models.RolePetani, models.RoleAdmin) {
			a.listProductFlow(ctx)
		}
	case "3":
		if a.guard(models.RolePetani, models.RoleAdmin) {
			a.incomingOrdersView(ctx, user)
		}
	case "4":
		a.chatView(ctx, user)
	case "5":
		a.logout()
	}
	return true
}

func (a *app) myProductsView(ctx context.Context, user *models.User) {
	products, err := a.catalog.MyProducts(ctx, user.ID)
	if err != nil {
		fmt.Println("Gagal memuat produk:", err)
		return
	}
	if len(products) == 0 {
		fmt.Println("Belum ada produk.")
		return
	}
	for i, p := range products {
		fmt.Printf("%d. %s - Rp%s per %s (stok %d)\n", i+1, p.Nama, p.Harga.StringFixed(0), p.Satuan, p.Stok)
	}

	fmt.Println("u. Ubah  h. Hapus  (enter kembali)")
	choice, ok := a.prompt("> ")
	if !ok {
		return
	}
	switch choice {
	case "u":
		idx, ok := a.promptInt("Nomor produk: ")
		if !ok || idx < 1 || idx > len(products) {
			return
		}
		a.updateProductFlow(ctx, &products[idx-1])
	case "h":
		idx, ok := a.promptInt("Nomor produk: ")
		if !ok || idx < 1 || idx > len(products) {
			return
		}
		if err := a.catalog.Delete(ctx, products[idx-1].ID); err != nil {
			fmt.Println("Gagal menghapus produk:", err)
			return
		}
		fmt.Println("Produk dihapus.")
	}
}

func (a *app) readProductRequest(defaults *models.Product) (*models.ProductCreateRequest, bool) {
	req := &models.ProductCreateRequest{}
	if defaults != nil {
		req.Nama = defaults.Nama
		req.Deskripsi = defaults.Deskripsi
		req.Harga = defaults.Harga
		req.Stok = defaults.Stok
		req.Satuan = defaults.Satuan
		req.ImageURL = defaults.ImageURL
	}

	if v, ok := a.prompt("Nama produk: "); !ok {
		return nil, false
	} else if v != "" {
		req.Nama = v
	}
	if v, ok := a.prompt("Deskripsi: "); !ok {
		return nil, false
	} else if v != "" {
		req.Deskripsi = v
	}
	if v, ok := a.prompt("Harga: "); !ok {
		return nil, false
	} else if v != "" {
		harga, err := decimal.NewFromString(v)
		if err != nil {
			fmt.Println("Harga tidak valid.")
			return nil, false
		}
		req.Harga = harga
	}
	if v, ok := a.prompt("Stok: "); !ok {
		return nil, false
	} else if v != "" {
		stok, err := strconv.Atoi(v)
		if err != nil {
			fmt.Println("Stok tidak valid.")
			return nil, false
		}
		req.Stok = stok
	}
	if v, ok := a.prompt("Satuan (kg/ikat/buah): "); !ok {
		return nil, false
	} else if v != "" {
		req.Satuan = v
	}
	return req, true
}

func (a *app) listProductFlow(ctx context.Context) {
	req, ok := a.readProductRequest(nil)
	if !ok {
		return
	}
	if _, err := a.catalog.List(ctx, req); err != nil {
		fmt.Println("Gagal menambah produk:", err)
		return
	}
	fmt.Println("Produk ditambahkan.")
}

func (a *app) updateProductFlow(ctx context.Context, product *models.Product) {
	fmt.Println("Kosongkan kolom untuk mempertahankan nilai lama.")
	req, ok := a.readProductRequest(product)
	if !ok {
		return
	}
	if _, err := a.catalog.Update(ctx, product.ID, req); err != nil {
		fmt.Println("Gagal mengubah produk:", err)
		return
	}
	fmt.Println("Produk diperbarui.")
}

func (a *app) incomingOrdersView(ctx context.Context, user *models.User) {
	orders, err := a.orders.Incoming(ctx, user.ID)
	if err != nil {
		fmt.Println("Gagal memuat pesanan:", err)
		return
	}
	if len(orders) == 0 {
		fmt.Println("Belum ada pesanan masuk.")
		return
	}
	for i, o := range orders {
		fmt.Printf("%d. %s  %s  Rp%s  %s\n",
			i+1, o.ID, o.Tanggal.Format("2006-01-02"),
			o.Total.StringFixed(0), o.StatusDisplayName())
	}

	idx, ok := a.promptInt("Ubah status pesanan (nomor, 0 batal): ")
	if !ok || idx < 1 || idx > len(orders) {
		return
	}
	order := &orders[idx-1]
	fmt.Println("Status baru: 1. Diproses  2. Selesai  3. Dibatalkan")
	statuses := []models.OrderStatus{
		models.OrderDiproses,
		models.OrderSelesai,
		models.OrderDibatalkan,
	}
	s, ok := a.promptInt("> ")
	if !ok || s < 1 || s > len(statuses) {
		return
	}
	updated, err := a.orders.Transition(ctx, order, statuses[s-1])
	if err != nil {
		fmt.Println("Gagal mengubah status:", err)
		return
	}
	fmt.Println("Status sekarang:", updated.StatusDisplayName())
}

func (a *app) adminMenu(user *models.User) bool {
	fmt.Printf("\n--- Admin: %s ---\n", user.Nama)
	fmt.Println("1. Kelola pengguna")
	fmt.Println("2. Semua produk")
	fmt.Println("3. Logout")
	fmt.Println("0. Keluar")
	choice, ok := a.prompt("> ")
	if !ok || choice == "0" {
		return false
	}

	ctx := context.Background()
	switch choice {
	case "1":
		if a.guard(models.RoleAdmin) {
			a.manageUsersView(ctx)
		}
	case "2":
		a.browseCatalog(ctx)
	case "3":
		a.logout()
	}
	return true
}

func (a *app) manageUsersView(ctx context.Context) {
	users, err := a.users.All(ctx)
	if err != nil {
		fmt.Println("Gagal memuat pengguna:", err)
		return
	}
	for i, u := range users {
		fmt.Printf("%d. %s <%s> %s\n", i+1, u.Nama, u.Email, u.Role.DisplayName())
	}

	fmt.Println("u. Ubah  h. Hapus  (enter kembali)")
	choice, ok := a.prompt("> ")
	if !ok {
		return
	}
	switch choice {
	case "u":
		idx, ok := a.promptInt("Nomor pengguna: ")
		if !ok || idx < 1 || idx > len(users) {
			return
		}
		target := users[idx-1]
		req := &models.UserUpdateRequest{
			Nama:   target.Nama,
			Role:   target.Role,
			Alamat: target.Alamat,
			NoHP:   target.NoHP,
		}
		if v, ok := a.prompt("Nama baru (kosong = tetap): "); !ok {
			return
		} else if v != "" {
			req.Nama = v
		}
		if v, ok := a.prompt("Role baru (kosong = tetap): "); !ok {
			return
		} else if v != "" {
			req.Role = models.Role(strings.ToUpper(v))
		}
		if _, err := a.users.Update(ctx, target.ID, req); err != nil {
			fmt.Println("Gagal mengubah pengguna:", err)
			return
		}
		fmt.Println("Pengguna diperbarui.")
	case "h":
		idx, ok := a.promptInt("Nomor pengguna: ")
		if !ok || idx < 1 || idx > len(users) {
			return
		}
		if err := a.users.Delete(ctx, users[idx-1].ID); err != nil {
			fmt.Println("Gagal menghapus pengguna:", err)
			return
		}
		fmt.Println("Pengguna dihapus.")
	}
}
