package catalog

// product is one built-in catalog entry.
type product struct {
	Title    string
	Category string
	Price    float64
	ColorHex string
	Tags     []string
}

// products is the built-in design-asset catalog, grouped by theme.
var products = []product{
	{Title: "Pastel UI Component Kit", Category: "ui", Price: 49000, ColorHex: "#f472b6", Tags: []string{"ui", "pastel", "component", "pink", "kit", "design", "web"}},
	{Title: "Modern Dashboard Template", Category: "ui", Price: 89000, ColorHex: "#6366f1", Tags: []string{"ui", "dashboard", "modern", "purple", "admin", "analytics"}},
	{Title: "Mobile App UI Kit — Finance", Category: "ui", Price: 65000, ColorHex: "#10b981", Tags: []string{"ui", "mobile", "finance", "green", "app", "banking"}},
	{Title: "E-commerce Website Template", Category: "ui", Price: 99000, ColorHex: "#ef4444", Tags: []string{"ui", "ecommerce", "web", "red", "shop", "store"}},
	{Title: "Dark Mode Admin Panel", Category: "ui", Price: 75000, ColorHex: "#111827", Tags: []string{"ui", "dark", "admin", "modern", "panel", "dashboard"}},
	{Title: "Minimal Landing Page", Category: "ui", Price: 35000, ColorHex: "#2563eb", Tags: []string{"ui", "minimal", "landing", "blue", "clean", "startup"}},
	{Title: "Minimal Geometric Logo Pack", Category: "logo", Price: 29000, ColorHex: "#2563eb", Tags: []string{"logo", "geometric", "minimal", "blue", "brand"}},
	{Title: "Corporate Brand Identity Kit", Category: "logo", Price: 120000, ColorHex: "#1e3a5f", Tags: []string{"logo", "brand", "corporate", "blue", "identity"}},
	{Title: "Vintage Badge Logo Creator", Category: "logo", Price: 22000, ColorHex: "#92400e", Tags: []string{"logo", "vintage", "badge", "brown", "retro"}},
	{Title: "Gradient Modern Logo Bundle", Category: "logo", Price: 45000, ColorHex: "#8b5cf6", Tags: []string{"logo", "gradient", "modern", "purple", "tech"}},
	{Title: "Nature & Organic Logo Set", Category: "logo", Price: 28000, ColorHex: "#10b981", Tags: []string{"logo", "nature", "organic", "green", "eco"}},
	{Title: "Hand-drawn Icon Set", Category: "icon", Price: 15000, ColorHex: "#111827", Tags: []string{"icon", "handdrawn", "sketch", "dark", "doodle"}},
	{Title: "Flat Design Icon Pack (500+)", Category: "icon", Price: 25000, ColorHex: "#f59e0b", Tags: []string{"icon", "flat", "colorful", "yellow", "material"}},
	{Title: "3D Isometric Icon Set", Category: "icon", Price: 39000, ColorHex: "#0ea5e9", Tags: []string{"icon", "3d", "isometric", "blue", "render"}},
	{Title: "Line Art Icon Collection", Category: "icon", Price: 18000, ColorHex: "#6b7280", Tags: []string{"icon", "line", "minimal", "gray", "outline"}},
	{Title: "Emoji & Sticker Pack", Category: "icon", Price: 12000, ColorHex: "#f59e0b", Tags: []string{"icon", "emoji", "sticker", "yellow", "fun"}},
	{Title: "Watercolor Illustration Bundle", Category: "illustration", Price: 35000, ColorHex: "#34d399", Tags: []string{"illustration", "watercolor", "art", "green", "painting"}},
	{Title: "Abstract Background Collection", Category: "illustration", Price: 19000, ColorHex: "#8b5cf6", Tags: []string{"illustration", "abstract", "background", "purple"}},
	{Title: "Character Illustration Kit", Category: "illustration", Price: 55000, ColorHex: "#f472b6", Tags: []string{"illustration", "character", "people", "pink"}},
	{Title: "Flat Vector Scene Builder", Category: "illustration", Price: 42000, ColorHex: "#2563eb", Tags: []string{"illustration", "flat", "scene", "blue", "vector"}},
	{Title: "Botanical Line Art Prints", Category: "illustration", Price: 23000, ColorHex: "#10b981", Tags: []string{"illustration", "botanical", "line", "green", "plant"}},
	{Title: "Retro Pattern Collection", Category: "illustration", Price: 16000, ColorHex: "#f97316", Tags: []string{"illustration", "retro", "pattern", "orange", "vintage"}},
	{Title: "Music & Instrument Icon Set", Category: "icon", Price: 22000, ColorHex: "#6366f1", Tags: []string{"icon", "music", "instrument", "guitar", "piano", "drum", "note", "audio"}},
	{Title: "Jazz Poster Template Bundle", Category: "illustration", Price: 31000, ColorHex: "#1e1b4b", Tags: []string{"illustration", "music", "jazz", "poster", "instrument", "vintage", "dark", "concert"}},
	{Title: "Music App UI Kit", Category: "ui", Price: 58000, ColorHex: "#7c3aed", Tags: []string{"ui", "music", "app", "mobile", "player", "audio", "purple", "streaming"}},
	{Title: "Vinyl Record & Audio Branding Kit", Category: "logo", Price: 37000, ColorHex: "#111827", Tags: []string{"logo", "music", "vinyl", "record", "audio", "brand", "dark", "instrument"}},
	{Title: "Restaurant Menu Template", Category: "ui", Price: 45000, ColorHex: "#b45309", Tags: []string{"ui", "food", "restaurant", "menu", "dining", "brown", "cafe", "drink"}},
	{Title: "Food Delivery App UI Kit", Category: "ui", Price: 79000, ColorHex: "#ef4444", Tags: []string{"ui", "food", "delivery", "app", "mobile", "red", "order", "restaurant"}},
	{Title: "Cafe & Coffee Brand Identity", Category: "logo", Price: 55000, ColorHex: "#78350f", Tags: []string{"logo", "cafe", "coffee", "food", "brand", "brown", "warm", "minimal"}},
	{Title: "Food Illustration Pack", Category: "illustration", Price: 28000, ColorHex: "#f59e0b", Tags: []string{"illustration", "food", "fruit", "vegetable", "yellow", "cute", "flat"}},
	{Title: "Fashion Brand Identity Kit", Category: "logo", Price: 88000, ColorHex: "#111827", Tags: []string{"logo", "fashion", "clothing", "brand", "luxury", "dark", "elegant", "minimal"}},
	{Title: "Clothing Store UI Template", Category: "ui", Price: 72000, ColorHex: "#f9fafb", Tags: []string{"ui", "fashion", "clothing", "shop", "ecommerce", "minimal", "white", "store"}},
	{Title: "Fashion Illustration Collection", Category: "illustration", Price: 42000, ColorHex: "#ec4899", Tags: []string{"illustration", "fashion", "clothing", "woman", "style", "pink", "drawing"}},
	{Title: "Travel App UI Kit", Category: "ui", Price: 69000, ColorHex: "#0ea5e9", Tags: []string{"ui", "travel", "app", "mobile", "map", "blue", "trip", "tourism", "airplane"}},
	{Title: "Travel & Adventure Icon Pack", Category: "icon", Price: 21000, ColorHex: "#0284c7", Tags: []string{"icon", "travel", "airplane", "map", "tourism", "adventure", "blue", "trip"}},
	{Title: "Tourism Brand Logo Bundle", Category: "logo", Price: 33000, ColorHex: "#0369a1", Tags: []string{"logo", "travel", "tourism", "brand", "blue", "mountain", "nature"}},
	{Title: "World Map Illustration Set", Category: "illustration", Price: 26000, ColorHex: "#06b6d4", Tags: []string{"illustration", "map", "travel", "world", "geography", "cyan", "country"}},
	{Title: "Sports Logo Template Pack", Category: "logo", Price: 38000, ColorHex: "#dc2626", Tags: []string{"logo", "sports", "soccer", "basketball", "baseball", "team", "red", "bold"}},
	{Title: "Fitness App UI Kit", Category: "ui", Price: 65000, ColorHex: "#16a34a", Tags: []string{"ui", "fitness", "health", "app", "mobile", "green", "workout", "sports", "gym"}},
	{Title: "Sports & Fitness Icon Set", Category: "icon", Price: 19000, ColorHex: "#f97316", Tags: []string{"icon", "sports", "fitness", "gym", "run", "orange", "soccer", "basketball"}},
	{Title: "Tech Startup Brand Kit", Category: "logo", Price: 95000, ColorHex: "#2563eb", Tags: []string{"logo", "tech", "startup", "brand", "blue", "modern", "digital", "software"}},
	{Title: "SaaS Landing Page Template", Category: "ui", Price: 85000, ColorHex: "#4f46e5", Tags: []string{"ui", "saas", "landing", "startup", "tech", "purple", "modern", "web"}},
	{Title: "Tech & Digital Icon Collection", Category: "icon", Price: 29000, ColorHex: "#0ea5e9", Tags: []string{"icon", "tech", "digital", "computer", "phone", "blue", "software", "cloud"}},
	{Title: "AI & Robot Illustration Pack", Category: "illustration", Price: 48000, ColorHex: "#6366f1", Tags: []string{"illustration", "ai", "robot", "tech", "digital", "purple", "futuristic"}},
	{Title: "Nature & Eco Logo Bundle", Category: "logo", Price: 32000, ColorHex: "#15803d", Tags: []string{"logo", "nature", "eco", "green", "leaf", "tree", "plant", "environment"}},
	{Title: "Nature Landscape Illustration Set", Category: "illustration", Price: 36000, ColorHex: "#16a34a", Tags: []string{"illustration", "nature", "landscape", "mountain", "forest", "green", "sky", "tree"}},
	{Title: "Plant & Flower Icon Pack", Category: "icon", Price: 17000, ColorHex: "#22c55e", Tags: []string{"icon", "plant", "flower", "nature", "leaf", "green", "botanical", "eco"}},
	{Title: "Cute Animal Illustration Bundle", Category: "illustration", Price: 33000, ColorHex: "#f59e0b", Tags: []string{"illustration", "animal", "cute", "cat", "dog", "bear", "cartoon", "yellow"}},
	{Title: "Pet Care Brand Identity", Category: "logo", Price: 41000, ColorHex: "#f97316", Tags: []string{"logo", "pet", "animal", "cat", "dog", "brand", "cute", "orange", "care"}},
	{Title: "Animal & Wildlife Icon Set", Category: "icon", Price: 20000, ColorHex: "#78350f", Tags: []string{"icon", "animal", "cat", "dog", "bird", "fish", "bear", "wild", "lion", "tiger"}},
	{Title: "Medical & Health Icon Pack", Category: "icon", Price: 24000, ColorHex: "#0891b2", Tags: []string{"icon", "medical", "health", "hospital", "doctor", "blue", "care", "pharmacy"}},
	{Title: "Healthcare App UI Kit", Category: "ui", Price: 82000, ColorHex: "#0d9488", Tags: []string{"ui", "health", "medical", "app", "mobile", "teal", "doctor", "hospital", "care"}},
	{Title: "Medical Brand Identity Kit", Category: "logo", Price: 60000, ColorHex: "#0284c7", Tags: []string{"logo", "medical", "health", "hospital", "brand", "blue", "clinic", "care"}},
	{Title: "Education App UI Kit", Category: "ui", Price: 71000, ColorHex: "#7c3aed", Tags: []string{"ui", "education", "app", "school", "learning", "purple", "mobile", "study"}},
	{Title: "School & Education Icon Set", Category: "icon", Price: 18000, ColorHex: "#6d28d9", Tags: []string{"icon", "education", "school", "book", "pen", "purple", "study", "learn"}},
	{Title: "E-learning Platform Template", Category: "ui", Price: 93000, ColorHex: "#4338ca", Tags: []string{"ui", "education", "elearning", "online", "course", "indigo", "web", "study"}},
	{Title: "Game UI Kit — Mobile RPG", Category: "ui", Price: 110000, ColorHex: "#1e1b4b", Tags: []string{"ui", "game", "mobile", "rpg", "dark", "fantasy", "entertainment", "indigo"}},
	{Title: "Game Logo & Badge Pack", Category: "logo", Price: 52000, ColorHex: "#7c3aed", Tags: []string{"logo", "game", "badge", "esports", "purple", "bold", "entertainment", "gaming"}},
	{Title: "Game Character Illustration Set", Category: "illustration", Price: 67000, ColorHex: "#dc2626", Tags: []string{"illustration", "game", "character", "fantasy", "anime", "red", "hero", "cartoon"}},
	{Title: "Social Media Post Template Pack", Category: "ui", Price: 39000, ColorHex: "#ec4899", Tags: []string{"ui", "social", "media", "instagram", "template", "pink", "marketing", "post"}},
	{Title: "Marketing & Ad Banner Kit", Category: "illustration", Price: 44000, ColorHex: "#f59e0b", Tags: []string{"illustration", "marketing", "banner", "ad", "promotion", "yellow", "sale"}},
	{Title: "Display Font & Typography Pack", Category: "ui", Price: 56000, ColorHex: "#111827", Tags: []string{"typography", "font", "type", "display", "dark", "minimal", "text", "headline"}},
	{Title: "Wedding Invitation Template Set", Category: "illustration", Price: 27000, ColorHex: "#fce7f3", Tags: []string{"illustration", "wedding", "invitation", "event", "pink", "floral", "elegant", "romantic"}},
	{Title: "Event & Party Poster Bundle", Category: "illustration", Price: 23000, ColorHex: "#7c3aed", Tags: []string{"illustration", "event", "party", "poster", "purple", "festive", "birthday", "concert"}},
	{Title: "Real Estate Brand Identity Kit", Category: "logo", Price: 78000, ColorHex: "#1e3a5f", Tags: []string{"logo", "realestate", "architecture", "building", "house", "brand", "navy", "property"}},
	{Title: "Property Listing App UI Kit", Category: "ui", Price: 91000, ColorHex: "#0369a1", Tags: []string{"ui", "realestate", "property", "house", "app", "mobile", "blue", "listing", "building"}},
	{Title: "Architecture & Interior Icon Pack", Category: "icon", Price: 22000, ColorHex: "#78716c", Tags: []string{"icon", "architecture", "interior", "house", "building", "design", "gray", "home"}},
	{Title: "Finance Dashboard UI Kit", Category: "ui", Price: 97000, ColorHex: "#1d4ed8", Tags: []string{"ui", "finance", "banking", "dashboard", "chart", "blue", "money", "analytics", "investment"}},
	{Title: "FinTech App UI Template", Category: "ui", Price: 86000, ColorHex: "#0f172a", Tags: []string{"ui", "finance", "fintech", "banking", "app", "dark", "money", "wallet", "payment"}},
	{Title: "Financial Brand Logo Bundle", Category: "logo", Price: 62000, ColorHex: "#1e40af", Tags: []string{"logo", "finance", "bank", "money", "brand", "blue", "trust", "corporate"}},
	{Title: "Automotive Brand Identity Kit", Category: "logo", Price: 73000, ColorHex: "#111827", Tags: []string{"logo", "car", "automotive", "vehicle", "brand", "dark", "speed", "modern"}},
	{Title: "Car Rental App UI Kit", Category: "ui", Price: 68000, ColorHex: "#ef4444", Tags: []string{"ui", "car", "rental", "automotive", "app", "mobile", "red", "vehicle", "transport"}},
	{Title: "Space & Astronomy Illustration Pack", Category: "illustration", Price: 44000, ColorHex: "#0f172a", Tags: []string{"illustration", "space", "astronomy", "star", "planet", "galaxy", "dark", "science", "moon"}},
	{Title: "Science & Lab Icon Collection", Category: "icon", Price: 21000, ColorHex: "#7c3aed", Tags: []string{"icon", "science", "lab", "chemistry", "research", "purple", "education", "atom"}},
	{Title: "Christmas Holiday Illustration Bundle", Category: "illustration", Price: 29000, ColorHex: "#dc2626", Tags: []string{"illustration", "christmas", "holiday", "santa", "snow", "red", "winter", "festive", "tree"}},
	{Title: "Halloween Icon & Sticker Pack", Category: "icon", Price: 16000, ColorHex: "#ea580c", Tags: []string{"icon", "halloween", "ghost", "pumpkin", "orange", "dark", "horror", "spooky", "holiday"}},
	{Title: "New Year Celebration Template", Category: "illustration", Price: 24000, ColorHex: "#fbbf24", Tags: []string{"illustration", "newyear", "celebration", "firework", "gold", "yellow", "party", "festive"}},
	{Title: "Summer Beach Illustration Set", Category: "illustration", Price: 31000, ColorHex: "#f59e0b", Tags: []string{"illustration", "summer", "beach", "tropical", "ocean", "yellow", "vacation", "sun"}},
	{Title: "Tropical Pattern & Background Pack", Category: "illustration", Price: 19000, ColorHex: "#10b981", Tags: []string{"illustration", "tropical", "pattern", "summer", "leaf", "green", "exotic", "floral"}},
	{Title: "Winter Wonderland Illustration Bundle", Category: "illustration", Price: 27000, ColorHex: "#bfdbfe", Tags: []string{"illustration", "winter", "snow", "cold", "blue", "ice", "seasonal", "cozy"}},
	{Title: "Photography Portfolio Website Template", Category: "ui", Price: 64000, ColorHex: "#111827", Tags: []string{"ui", "photography", "portfolio", "camera", "dark", "minimal", "website", "photo"}},
	{Title: "Camera & Photography Icon Set", Category: "icon", Price: 18000, ColorHex: "#374151", Tags: []string{"icon", "camera", "photography", "photo", "gray", "lens", "picture", "media"}},
	{Title: "Interior Design Brand Kit", Category: "logo", Price: 66000, ColorHex: "#d6d3d1", Tags: []string{"logo", "interior", "home", "design", "furniture", "minimal", "warm", "decor"}},
	{Title: "Home Decor App UI Kit", Category: "ui", Price: 76000, ColorHex: "#a78bfa", Tags: []string{"ui", "home", "interior", "decor", "app", "furniture", "purple", "lifestyle", "design"}},
	{Title: "Podcast Cover Art Template Pack", Category: "illustration", Price: 32000, ColorHex: "#7c3aed", Tags: []string{"illustration", "podcast", "media", "audio", "cover", "purple", "broadcast", "radio"}},
	{Title: "Media & Broadcast Brand Identity", Category: "logo", Price: 57000, ColorHex: "#dc2626", Tags: []string{"logo", "media", "broadcast", "tv", "radio", "podcast", "red", "entertainment"}},
	{Title: "Crypto & Blockchain UI Kit", Category: "ui", Price: 88000, ColorHex: "#f59e0b", Tags: []string{"ui", "crypto", "blockchain", "bitcoin", "nft", "yellow", "finance", "digital", "web3"}},
	{Title: "NFT Art Collection Branding", Category: "logo", Price: 72000, ColorHex: "#8b5cf6", Tags: []string{"logo", "nft", "crypto", "art", "digital", "purple", "modern", "web3", "collectible"}},
	{Title: "3D Gradient Object Illustration Pack", Category: "illustration", Price: 53000, ColorHex: "#ec4899", Tags: []string{"illustration", "3d", "gradient", "object", "pink", "modern", "abstract", "render"}},
	{Title: "Glassmorphism UI Component Kit", Category: "ui", Price: 61000, ColorHex: "#6366f1", Tags: []string{"ui", "glassmorphism", "glass", "modern", "component", "purple", "transparent", "blur"}},
	{Title: "Neon & Dark Theme Icon Pack", Category: "icon", Price: 26000, ColorHex: "#22d3ee", Tags: []string{"icon", "neon", "dark", "glow", "cyan", "modern", "tech", "gaming", "electric"}},
	{Title: "Anime Character Illustration Bundle", Category: "illustration", Price: 47000, ColorHex: "#f472b6", Tags: []string{"illustration", "anime", "character", "cute", "japanese", "pink", "manga", "cartoon"}},
	{Title: "Chibi & Kawaii Sticker Pack", Category: "icon", Price: 14000, ColorHex: "#fb7185", Tags: []string{"icon", "kawaii", "cute", "chibi", "sticker", "pink", "anime", "emoji", "japanese"}},
	{Title: "Corporate Presentation Template", Category: "ui", Price: 54000, ColorHex: "#1e40af", Tags: []string{"ui", "corporate", "presentation", "business", "slide", "blue", "professional", "office"}},
	{Title: "HR & Recruitment Brand Kit", Category: "logo", Price: 48000, ColorHex: "#0d9488", Tags: []string{"logo", "hr", "recruitment", "business", "brand", "teal", "corporate", "people"}},
	{Title: "Business Infographic Template Bundle", Category: "illustration", Price: 38000, ColorHex: "#2563eb", Tags: []string{"illustration", "infographic", "business", "chart", "data", "blue", "corporate", "report"}},
	{Title: "Beauty & Cosmetics Brand Identity", Category: "logo", Price: 69000, ColorHex: "#f9a8d4", Tags: []string{"logo", "beauty", "cosmetics", "makeup", "skincare", "pink", "luxury", "brand", "elegant"}},
	{Title: "Beauty App UI Kit", Category: "ui", Price: 77000, ColorHex: "#fbcfe8", Tags: []string{"ui", "beauty", "cosmetics", "app", "mobile", "pink", "skincare", "makeup", "lifestyle"}},
}
