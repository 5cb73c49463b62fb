package i18n

var translations = map[Lang]map[string]string{
	Japanese: {
		"nav_map":           "マップ",
		"nav_ai":            "AI",
		"nav_favorites":     "お気に入り",
		"nav_magazine":      "雑誌",
		"nav_profile":       "マイページ",
		"profile_title":     "マイページ",
		"magazine_title":    "月間雑誌",
		"map_title":         "おでかけマップ",
		"ai_title":          "AIアシスタント",
		"favorites_title":   "お気に入り",
		"profile_edit":      "プロフィール編集",
		"label_name":        "お名前",
		"label_furigana":    "ふりがな",
		"label_email":       "メールアドレス",
		"label_phone":       "電話番号",
		"label_address":     "住所",
		"label_language":    "言語",
		"pet_info":          "ペット情報",
		"add_pet":           "ペットを追加",
		"save":              "保存",
		"logout":            "ログアウト",
		"no_favorites":      "お気に入りがまだありません。",
		"delete":            "削除",
		"send":              "送信",
		"chat_placeholder":  "メッセージを入力...",
		"reset_view":        "周辺表示",
		"view_details":      "詳細を見る",
		"save_favorite":     "お気に入り",
		"save_want":         "行ってみたい",
		"save_plan":         "旅行プラン",
		"save_star":         "スター付き",
		"saved_msg":         "リストに保存しました",
		"already_saved_msg": "既にこのリストに登録済みです",
		"cat_event":         "イベント",
		"cat_restaurant":    "レストラン",
		"cat_hotel":         "ホテル",
		"cat_activity":      "アクティビティ",
		"cat_museum":        "博物館",
		"cat_facility":      "施設",
	},
	English: {
		"nav_map":           "Map",
		"nav_ai":            "AI",
		"nav_favorites":     "Favorites",
		"nav_magazine":      "Magazine",
		"nav_profile":       "Profile",
		"profile_title":     "My Page",
		"magazine_title":    "Monthly Magazine",
		"map_title":         "Outing Map",
		"ai_title":          "AI Assistant",
		"favorites_title":   "Favorites",
		"profile_edit":      "Edit Profile",
		"label_name":        "Name",
		"label_furigana":    "Furigana",
		"label_email":       "Email Address",
		"label_phone":       "Phone Number",
		"label_address":     "Address",
		"label_language":    "Language",
		"pet_info":          "Pet Info",
		"add_pet":           "Add Pet",
		"save":              "Save",
		"logout":            "Logout",
		"no_favorites":      "No favorites yet.",
		"delete":            "Remove",
		"send":              "Send",
		"chat_placeholder":  "Enter your message...",
		"reset_view":        "Reset View",
		"view_details":      "View details",
		"save_favorite":     "Favorites",
		"save_want":         "Want to go",
		"save_plan":         "Trip plan",
		"save_star":         "Starred",
		"saved_msg":         "Saved to your list",
		"already_saved_msg": "Already in this list",
		"cat_event":         "Events",
		"cat_restaurant":    "Restaurants",
		"cat_hotel":         "Hotels",
		"cat_activity":      "Activities",
		"cat_museum":        "Museums",
		"cat_facility":      "Facilities",
	},
	Chinese: {
		"nav_map":           "地图",
		"nav_ai":            "AI",
		"nav_favorites":     "收藏",
		"nav_magazine":      "杂志",
		"nav_profile":       "我的主页",
		"profile_title":     "我的主页",
		"magazine_title":    "月刊杂志",
		"map_title":         "外出地图",
		"ai_title":          "AI助手",
		"favorites_title":   "收藏",
		"profile_edit":      "编辑个人信息",
		"label_name":        "姓名",
		"label_furigana":    "读音",
		"label_email":       "电子邮件",
		"label_phone":       "电话号码",
		"label_address":     "地址",
		"label_language":    "语言",
		"pet_info":          "宠物信息",
		"add_pet":           "添加宠物",
		"save":              "保存",
		"logout":            "退出登录",
		"no_favorites":      "暂无收藏。",
		"delete":            "删除",
		"send":              "发送",
		"chat_placeholder":  "输入您的信息...",
		"reset_view":        "重置视图",
		"view_details":      "查看详情",
		"save_favorite":     "收藏",
		"save_want":         "想去",
		"save_plan":         "旅行计划",
		"save_star":         "星标",
		"saved_msg":         "已保存到列表",
		"already_saved_msg": "已在此列表中",
		"cat_event":         "活动",
		"cat_restaurant":    "餐厅",
		"cat_hotel":         "酒店",
		"cat_activity":      "游乐",
		"cat_museum":        "博物馆",
		"cat_facility":      "设施",
	},
	Korean: {
		"nav_map":           "지도",
		"nav_ai":            "AI",
		"nav_favorites":     "즐겨찾기",
		"nav_magazine":      "잡지",
		"nav_profile":       "마이페이지",
		"profile_title":     "마이페이지",
		"magazine_title":    "월간 잡지",
		"map_title":         "나들이 지도",
		"ai_title":          "AI 어시스턴트",
		"favorites_title":   "즐겨찾기",
		"profile_edit":      "프로필 편집",
		"label_name":        "이름",
		"label_furigana":    "후리가나",
		"label_email":       "이메일",
		"label_phone":       "전화번호",
		"label_address":     "주소",
		"label_language":    "언어",
		"pet_info":          "반려동물 정보",
		"add_pet":           "반려동물 추가",
		"save":              "저장",
		"logout":            "로그아웃",
		"no_favorites":      "즐겨찾기가 없습니다.",
		"delete":            "삭제",
		"send":              "보내기",
		"chat_placeholder":  "메시지를 입력하세요...",
		"reset_view":        "주변 표시",
		"view_details":      "자세히 보기",
		"save_favorite":     "즐겨찾기",
		"save_want":         "가보고 싶은 곳",
		"save_plan":         "여행 계획",
		"save_star":         "별표",
		"saved_msg":         "목록에 저장했습니다",
		"already_saved_msg": "이미 이 목록에 있습니다",
		"cat_event":         "이벤트",
		"cat_restaurant":    "레스토랑",
		"cat_hotel":         "호텔",
		"cat_activity":      "액티비티",
		"cat_museum":        "박물관",
		"cat_facility":      "시설",
	},
}
