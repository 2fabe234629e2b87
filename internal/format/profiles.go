package format

// Built-in topic profiles. Headers and fallback copy mirror what the bot has
// always posted; extra topics get profiles from config.

func CryptoProfile() Profile {
	return Profile{
		Topic:        "crypto",
		Header:       "🚀 Crypto News Update 🚀",
		FallbackText: "Markets never sleep! Fresh crypto headlines are on the way.",
		FallbackImages: []string{
			"https://images.unsplash.com/photo-1518546305927-5a555bb7020d",
			"https://images.unsplash.com/photo-1621761191319-c6fb62004040",
			"https://images.unsplash.com/photo-1516245834210-c4c142787335",
		},
	}
}

func SportsProfile() Profile {
	return Profile{
		Topic:        "sports",
		Header:       "⚽ Sports News Update ⚽",
		FallbackText: "Stay tuned for the latest sports news! We're currently updating our news feed.",
		FallbackImages: []string{
			"https://images.unsplash.com/photo-1461896836934-ffe607ba8211",
			"https://images.unsplash.com/photo-1517649763962-0c623066013b",
			"https://images.unsplash.com/photo-1579952363873-27f3bade9f55",
		},
	}
}
