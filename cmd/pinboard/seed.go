package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spr311/pinboard/internal/adapters/repository"
	"github.com/spr311/pinboard/internal/config"
	"github.com/spr311/pinboard/internal/domain/model"
)

// seedPool pairs image search keywords with matching Ukrainian titles.
// Index i of keywords corresponds to index i of titles so that the picsum
// seed and the title describe the same subject.
type seedPool struct {
	category string
	keywords []string
	titles   []string
}

var seedPools = []seedPool{
	{"nature",
		[]string{"landscape", "forest", "mountain", "ocean", "sunset", "trees", "river", "valley", "lake", "beach"},
		[]string{"Красивий пейзаж", "Лісові тропи", "Гірські вершини", "Морський берег", "Захід сонця", "Дерева та природа", "Річка в лісі", "Гірська долина", "Озеро в горах", "Пляж"}},
	{"food",
		[]string{"food", "cuisine", "restaurant", "cooking", "meal", "dish", "dessert", "breakfast", "pasta", "pizza"},
		[]string{"Смачна страва", "Кулінарний шедевр", "Ресторанна їжа", "Домашня кухня", "Смачний обід", "Гарна страва", "Десерт", "Сніданок", "Паста", "Піца"}},
	{"travel",
		[]string{"travel", "adventure", "explore", "journey", "destination", "vacation", "trip", "wanderlust", "backpacking", "beach"},
		[]string{"Подорож до мрії", "Пригоди", "Нові горизонти", "Мандрівка", "Екзотичні місця", "Відпочинок", "Подорож", "Відкриття світу", "Туризм", "Пляжний відпочинок"}},
	{"fashion",
		[]string{"fashion", "style", "outfit", "clothing", "trend", "elegant", "model", "wardrobe", "dress", "suit"},
		[]string{"Стильний образ", "Модний тренд", "Елегантність", "Сучасна мода", "Унікальний стиль", "Модний вигляд", "Стильна модель", "Гардероб", "Платье", "Костюм"}},
	{"art",
		[]string{"art", "painting", "creative", "abstract", "gallery", "artist", "canvas", "colorful", "sculpture", "drawing"},
		[]string{"Творчий витвір", "Мистецька робота", "Абстрактне мистецтво", "Колірна палітра", "Художня виразність", "Картина", "Творчість", "Абстракція", "Галерея", "Малюнок"}},
	{"architecture",
		[]string{"architecture", "building", "city", "urban", "modern", "design", "structure", "skyscraper", "bridge", "cathedral"},
		[]string{"Сучасна архітектура", "Історична будівля", "Міський пейзаж", "Унікальний дизайн", "Архітектурний шедевр", "Будівля", "Місто", "Урбаністика", "Структура", "Хмарочос"}},
	{"animals",
		[]string{"animals", "wildlife", "pet", "dog", "cat", "nature", "creature", "fauna", "bird", "lion"},
		[]string{"Мій улюбленець", "Дика природа", "Домашній улюбленець", "Собака", "Кіт", "Тваринний світ", "Тварини", "Фауна", "Птах", "Лев"}},
	{"sport",
		[]string{"sport", "fitness", "athlete", "exercise", "training", "active", "workout", "gym", "running", "cycling"},
		[]string{"Активний відпочинок", "Спортивний момент", "Здоров'я та фітнес", "Спортивні досягнення", "Активний спосіб життя", "Спорт", "Атлет", "Тренування", "Біг", "Велоспорт"}},
	{"technology",
		[]string{"technology", "tech", "digital", "innovation", "computer", "device", "modern", "future", "laptop", "smartphone"},
		[]string{"Технології майбутнього", "Інновації", "Цифровий світ", "Технічні новинки", "Сучасні технології", "Технологія", "Цифрові технології", "Інновація", "Комп'ютер", "Смартфон"}},
	{"design",
		[]string{"design", "minimalist", "interior", "graphic", "creative", "modern", "aesthetic", "style", "furniture", "decor"},
		[]string{"Креативний дизайн", "Мінімалізм", "Дизайн інтер'єру", "Графічний дизайн", "Сучасний дизайн", "Дизайн", "Мінімалістичний", "Інтер'єр", "Графіка", "Меблі"}},
	{"beauty",
		[]string{"beauty", "cosmetics", "makeup", "skincare", "elegant", "glamour", "fashion", "style", "perfume", "lipstick"},
		[]string{"Краса та стиль", "Косметика", "Догляд за собою", "Елегантність", "Природна краса", "Краса", "Макіяж", "Догляд", "Гламур", "Парфум"}},
	{"music",
		[]string{"music", "concert", "instrument", "melody", "rhythm", "sound", "audio", "performance", "guitar", "piano"},
		[]string{"Музичний момент", "Концерт", "Музичний інструмент", "Музична атмосфера", "Ритм життя", "Музика", "Концертна зала", "Інструмент", "Мелодія", "Гітара"}},
}

var seedBios = []string{
	"Люблю фотографію та подорожі",
	"Дизайнер та креативний мислитель",
	"Шукаю натхнення в красі навколишнього світу",
	"Поділяю свої улюблені моменти",
	"Творча особистість з любов'ю до мистецтва",
	"Ентузіаст краси та стилю",
	"Досліджую світ через об'єктив",
	"Колекціонер красивих моментів",
}

var seedDescriptions = []string{
	"Це зображення надихнуло мене на нові ідеї",
	"Поділяюся своїм улюбленим моментом",
	"Краса в деталях",
	"Момент, який варто зберегти",
	"Натхнення для творчості",
}

func runSeed(usersCount, pinsPerUser int) error {
	if usersCount < 1 || pinsPerUser < 1 {
		return fmt.Errorf("users and pins-per-user must be positive")
	}

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := repository.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	users := make([]model.User, 0, usersCount)
	for i := 1; i <= usersCount; i++ {
		bio := seedBios[rng.Intn(len(seedBios))]
		username := fmt.Sprintf("user%d", i)
		u := model.User{
			Username:  username,
			Email:     fmt.Sprintf("user%d@example.com", i),
			Bio:       &bio,
			AvatarURL: fmt.Sprintf("https://picsum.photos/seed/%s/200/200", username),
			CreatedAt: now.AddDate(0, 0, -rng.Intn(365)),
		}
		if err := store.CreateUser(ctx, &u); err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", username, err)
			continue
		}
		users = append(users, u)
	}
	fmt.Fprintf(os.Stderr, "created %d users\n", len(users))

	totalPins := 0
	for _, u := range users {
		// Each user gets between half and the full pin budget.
		userPins := pinsPerUser/2 + rng.Intn(pinsPerUser/2+1)
		for i := 0; i < userPins; i++ {
			pool := seedPools[rng.Intn(len(seedPools))]
			idx := rng.Intn(len(pool.titles))

			width := 400 + rng.Intn(400)
			height := 500 + rng.Intn(700)
			imageID := 1 + rng.Intn(9999)
			seed := fmt.Sprintf("%s_%s_%d_%d_%d", pool.category, pool.keywords[idx], u.ID, i, imageID)

			p := model.Pin{
				Title:       pool.titles[idx],
				Description: randomDescription(rng),
				ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", seed, width, height),
				ImageWidth:  width,
				ImageHeight: height,
				Link:        randomLink(rng, pool.category, imageID),
				OwnerID:     u.ID,
				Visibility:  model.VisibilityPublic,
				CreatedAt:   now.AddDate(0, 0, -rng.Intn(180)),
			}
			if err := store.CreatePin(ctx, &p); err != nil {
				return fmt.Errorf("create pin: %w", err)
			}
			totalPins++
		}
	}

	fmt.Fprintf(os.Stderr, "created %d pins\n", totalPins)
	return nil
}

// randomDescription returns a description roughly a third of the time.
func randomDescription(rng *rand.Rand) *string {
	if rng.Intn(3) != 0 {
		return nil
	}
	d := seedDescriptions[rng.Intn(len(seedDescriptions))]
	return &d
}

// randomLink attaches an outbound link to roughly a third of pins.
func randomLink(rng *rand.Rand, category string, imageID int) *string {
	if rng.Intn(3) != 0 {
		return nil
	}
	l := fmt.Sprintf("https://example.com/%s/%d", category, imageID)
	return &l
}
