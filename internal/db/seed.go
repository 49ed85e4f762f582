package db

import "github.com/google/uuid"

// seedDestination mirrors the curated GAP-region reference data the platform
// ships with. Tags are stored as a JSON array.
type seedDestination struct {
	name        string
	description string
	category    string
	location    string
	rating      float64
	imageURL    string
	tags        string
}

var seedDestinations = []seedDestination{
	{"Göbeklitepe", "Dünyanın en eski tapınak kompleksi, 12.000 yıllık tarih", "Tarihi", "Şanlıurfa", 4.8, "gobekli.jpg", `["tarih","arkeoloji","unesco"]`},
	{"Balıklıgöl", "Hz. İbrahim'in ateşe atıldığı yer, kutsal göl", "Dini", "Şanlıurfa", 4.7, "balikligol.jpg", `["din","tarih","göl"]`},
	{"Nemrut Dağı", "Kommagene Krallığı'nın dev heykelleri", "Tarihi", "Adıyaman", 4.9, "nemrut.jpg", `["tarih","unesco","dağ"]`},
	{"Harran", "Koni evleriyle ünlü antik şehir", "Tarihi", "Şanlıurfa", 4.5, "harran.jpg", `["tarih","mimari","antik"]`},
	{"Hasankeyf", "12.000 yıllık tarihi yerleşim", "Tarihi", "Batman", 4.6, "hasankeyf.jpg", `["tarih","kale","höyük"]`},
	{"Mardin Kalesi", "Taş evleriyle ünlü tarihi şehir", "Tarihi", "Mardin", 4.7, "mardin.jpg", `["tarih","mimari","kale"]`},
	{"Diyarbakır Surları", "Çin Seddi'nden sonra en uzun sur", "Tarihi", "Diyarbakır", 4.4, "sur.jpg", `["tarih","sur","unesco"]`},
	{"Zeugma Mozaik Müzesi", "Dünyanın en büyük mozaik müzesi", "Müze", "Gaziantep", 4.8, "zeugma.jpg", `["müze","mozaik","sanat"]`},
}

// seedDestinations inserts the reference destinations, skipping names that
// already exist so repeated startups stay idempotent.
func (d *DB) seedDestinations() error {
	stmt, err := d.Prepare(`INSERT OR IGNORE INTO destinations (id, name, description, category, location, rating, image_url, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range seedDestinations {
		if _, err := stmt.Exec(uuid.New().String(), s.name, s.description, s.category, s.location, s.rating, s.imageURL, s.tags); err != nil {
			return err
		}
	}
	return nil
}
