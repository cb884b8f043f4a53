package api

import (
	"github.com/prognoshealth/vnlookup/config"
	"github.com/prognoshealth/vnlookup/localtime"
	"github.com/prognoshealth/vnlookup/regions"
)

const author = "truyentranh210"

type usage struct {
	Method  string `json:"method"`
	Example string `json:"example"`
	Note    string `json:"note"`
}

// homeDocument is served on /home.
type homeDocument struct {
	Project     string            `json:"project"`
	Author      string            `json:"author"`
	Version     string            `json:"version"`
	Updated     string            `json:"updated"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
	Usage       map[string]usage  `json:"usage"`
	Regions     []string          `json:"regions"`
	Message     string            `json:"message"`
}

// docsDocument is served on /docs.
type docsDocument struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
	Example   map[string]string `json:"example"`
	Regions   []string          `json:"regions"`
	Author    string            `json:"author"`
	Version   string            `json:"version"`
}

// infoDocument returns the description for the configured variant. Example
// paths carry the mount prefix so they can be pasted as is.
func infoDocument(variant, mount string, stamper *localtime.Stamper) interface{} {
	if variant == config.InfoRouteDocs {
		return docsDocument{
			Message: "🌤 API Thời tiết & Xổ số Việt Nam",
			Endpoints: map[string]string{
				"/xoso?dai=":          "Tra cứu kết quả xổ số (VD: dai=MB, MN, MT, Ha Noi, TP HCM, Mega, Power...)",
				"/thoitiet?dia_diem=": "Tra cứu thời tiết hiện tại (VD: dia_diem=Da Nang, Ho Chi Minh...)",
			},
			Example: map[string]string{
				"xoso":     mount + "/xoso?dai=MB",
				"thoitiet": mount + "/thoitiet?dia_diem=Ha Noi",
			},
			Regions: regions.Codes(),
			Author:  author,
			Version: "2.0.0",
		}
	}

	return homeDocument{
		Project:     "🎯 API Xổ Số & Thời Tiết",
		Author:      author,
		Version:     "1.0.0",
		Updated:     stamper.ISO(),
		Description: "API chạy trên serverless function, gồm 2 chức năng: lấy kết quả xổ số và thông tin thời tiết thực tế.",
		Endpoints: map[string]string{
			"/home":                     "Hiển thị toàn bộ hướng dẫn sử dụng API",
			"/xoso?dai=mb":              "Lấy kết quả xổ số (ví dụ: mb, mn, mt, tp hcm, da nang...)",
			"/thoitiet?dia_diem=Ha Noi": "Lấy thông tin thời tiết của địa điểm (ví dụ: Ha Noi, Da Nang, Ho Chi Minh)",
		},
		Usage: map[string]usage{
			"xoso": {
				Method:  "GET",
				Example: mount + "/xoso?dai=mb",
				Note:    "Trả về giải đặc biệt và ngày mở thưởng theo khu vực.",
			},
			"thoitiet": {
				Method:  "GET",
				Example: mount + "/thoitiet?dia_diem=Ha Noi",
				Note:    "Trả về nhiệt độ, độ ẩm, tình trạng thời tiết hiện tại và dự báo ngắn hạn.",
			},
		},
		Regions: regions.Codes(),
		Message: "✅ API đang hoạt động tốt! Hãy thử các endpoint ở trên.",
	}
}
