package profile

// koEn translates common Korean design and general terms. Order matters for
// the substring fallback: the first matching entry wins.
var koEn = []struct{ ko, en string }{
	{"고양이", "cat"},
	{"강아지", "dog"},
	{"개", "dog"},
	{"새", "bird"},
	{"나비", "butterfly"},
	{"물고기", "fish"},
	{"토끼", "rabbit"},
	{"곰", "bear"},
	{"사자", "lion"},
	{"호랑이", "tiger"},
	{"말", "horse"},
	{"용", "dragon"},
	{"여우", "fox"},
	{"늑대", "wolf"},
	{"펭귄", "penguin"},
	{"꽃", "flower"},
	{"나무", "tree"},
	{"숲", "forest"},
	{"산", "mountain"},
	{"바다", "ocean"},
	{"하늘", "sky"},
	{"별", "star"},
	{"달", "moon"},
	{"해", "sun"},
	{"구름", "cloud"},
	{"비", "rain"},
	{"눈", "snow"},
	{"강", "river"},
	{"호수", "lake"},
	{"잎", "leaf"},
	{"로고", "logo"},
	{"아이콘", "icon"},
	{"배너", "banner"},
	{"포스터", "poster"},
	{"카드", "card"},
	{"버튼", "button"},
	{"배경", "background"},
	{"패턴", "pattern"},
	{"일러스트", "illustration"},
	{"캐릭터", "character"},
	{"그래픽", "graphic"},
	{"타이포", "typography"},
	{"레이아웃", "layout"},
	{"웹", "web"},
	{"앱", "app"},
	{"모바일", "mobile"},
	{"대시보드", "dashboard"},
	{"디자인", "design"},
	{"미니멀", "minimal"},
	{"모던", "modern"},
	{"빈티지", "vintage"},
	{"레트로", "retro"},
	{"플랫", "flat"},
	{"심플", "simple"},
	{"귀여운", "cute"},
	{"귀엽다", "cute"},
	{"깔끔한", "clean"},
	{"세련된", "elegant"},
	{"고급", "premium"},
	{"럭셔리", "luxury"},
	{"집", "house"},
	{"건물", "building"},
	{"차", "car"},
	{"자동차", "car"},
	{"음식", "food"},
	{"커피", "coffee"},
	{"책", "book"},
	{"음악", "music"},
	{"카메라", "camera"},
	{"전화", "phone"},
	{"컴퓨터", "computer"},
	{"게임", "game"},
	{"하트", "heart"},
	{"사랑", "love"},
	{"사람", "person"},
	{"얼굴", "face"},
	{"악기", "instrument"},
	{"기타", "guitar"},
	{"피아노", "piano"},
	{"드럼", "drum"},
	{"바이올린", "violin"},
	{"트럼펫", "trumpet"},
	{"플루트", "flute"},
	{"시계", "clock"},
	{"꽃병", "vase"},
	{"의자", "chair"},
	{"테이블", "table"},
	{"가방", "bag"},
	{"신발", "shoes"},
	{"옷", "clothing"},
	{"모자", "hat"},
	{"태양", "sun"},
	{"화살표", "arrow"},
	{"체크", "check"},
	{"별표", "asterisk"},
	{"스포츠", "sports"},
	{"축구", "soccer"},
	{"농구", "basketball"},
	{"야구", "baseball"},
	{"여행", "travel"},
	{"지도", "map"},
	{"비행기", "airplane"},
	{"기차", "train"},
	{"의료", "medical"},
	{"건강", "health"},
	{"교육", "education"},
	{"학교", "school"},
	{"따뜻한", "warm"},
	{"차가운", "cool"},
	{"밝은", "bright"},
	{"어두운", "dark"},
	{"부드러운", "soft"},
	{"강한", "bold"},
	{"재미있는", "fun"},
	{"전문적", "professional"},
	{"자연", "nature"},
	{"추상", "abstract"},
	{"기하학", "geometric"},
	{"사진", "photo"},
	{"그림", "painting"},
	{"스케치", "sketch"},
	{"만화", "cartoon"},
	{"애니", "anime"},
	{"수채화", "watercolor"},
	{"벡터", "vector"},
	{"입체", "3d"},
}

var koEnIndex = func() map[string]string {
	m := make(map[string]string, len(koEn))
	for _, p := range koEn {
		m[p.ko] = p.en
	}
	return m
}()

var stopwords = map[string]struct{}{
	"a": {},
	"an": {},
	"and": {},
	"are": {},
	"could": {},
	"create": {},
	"find": {},
	"for": {},
	"in": {},
	"is": {},
	"it": {},
	"like": {},
	"looking": {},
	"make": {},
	"me": {},
	"my": {},
	"need": {},
	"of": {},
	"on": {},
	"or": {},
	"please": {},
	"should": {},
	"that": {},
	"the": {},
	"this": {},
	"to": {},
	"want": {},
	"with": {},
	"would": {},
	"가": {},
	"같은": {},
	"것": {},
	"과": {},
	"까지": {},
	"나": {},
	"는": {},
	"더": {},
	"도": {},
	"되는": {},
	"된": {},
	"등": {},
	"로": {},
	"를": {},
	"만": {},
	"매우": {},
	"부터": {},
	"수": {},
	"아주": {},
	"에": {},
	"에서": {},
	"와": {},
	"으로": {},
	"은": {},
	"을": {},
	"의": {},
	"이": {},
	"이나": {},
	"있는": {},
	"잘": {},
	"좀": {},
	"하고": {},
	"하는": {},
	"하다": {},
	"한": {},
	"할": {},
}

// colorWords maps color names (English and Korean) to hex values. The first
// name found anywhere in the prompt wins.
var colorWords = []struct{ name, hex string }{
	{"red", "#ef4444"},
	{"blue", "#2563eb"},
	{"green", "#10b981"},
	{"yellow", "#f59e0b"},
	{"purple", "#8b5cf6"},
	{"pink", "#f472b6"},
	{"orange", "#f97316"},
	{"black", "#111827"},
	{"white", "#f9fafb"},
	{"gray", "#6b7280"},
	{"grey", "#6b7280"},
	{"빨간", "#ef4444"},
	{"빨강", "#ef4444"},
	{"빨간색", "#ef4444"},
	{"파란", "#2563eb"},
	{"파랑", "#2563eb"},
	{"파란색", "#2563eb"},
	{"초록", "#10b981"},
	{"녹색", "#10b981"},
	{"초록색", "#10b981"},
	{"노란", "#f59e0b"},
	{"노랑", "#f59e0b"},
	{"노란색", "#f59e0b"},
	{"보라", "#8b5cf6"},
	{"보라색", "#8b5cf6"},
	{"검정", "#111827"},
	{"검은", "#111827"},
	{"검은색", "#111827"},
	{"검정색", "#111827"},
	{"흰", "#f9fafb"},
	{"하얀", "#f9fafb"},
	{"흰색", "#f9fafb"},
	{"하얀색", "#f9fafb"},
	{"분홍", "#f472b6"},
	{"분홍색", "#f472b6"},
	{"주황", "#f97316"},
	{"주황색", "#f97316"},
	{"갈색", "#92400e"},
}
