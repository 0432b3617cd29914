package quote

import "log"

// SeedQuotes returns the starter set inserted on first boot.
func SeedQuotes() []string {
	return []string{
		"The secret of getting ahead is getting started. – Mark Twain",
		"It always seems impossible until it's done. – Nelson Mandela",
		"Don't watch the clock; do what it does. Keep going. – Sam Levenson",
		"Success is not the key to happiness. Happiness is the key to success. – Albert Schweitzer",
		"Believe you can and you're halfway there. – Theodore Roosevelt",
		"The only way to do great work is to love what you do. – Steve Jobs",
		"In the middle of every difficulty lies opportunity. – Albert Einstein",
		"You miss 100% of the shots you don't take. – Wayne Gretzky",
		"Success is walking from failure to failure with no loss of enthusiasm. – Winston Churchill",
		"Hardships often prepare ordinary people for an extraordinary destiny. – C.S. Lewis",
		"Don't let yesterday take up too much of today. – Will Rogers",
		"You don't have to be great to start, but you have to start to be great. – Zig Ziglar",
		"The future depends on what you do today. – Mahatma Gandhi",
		"Push yourself, because no one else is going to do it for you.",
		"Small steps every day lead to massive results over time.",
	}
}

// EnsureSeeded inserts the starter quotes when the store is empty.
func EnsureSeeded(repo Repo, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	n, err := repo.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, text := range SeedQuotes() {
		if _, err := repo.Add(text); err != nil {
			return err
		}
	}
	logger.Printf("seeded %d motivational quotes", len(SeedQuotes()))
	return nil
}
